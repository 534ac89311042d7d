package language

import "strings"

// Category groups file types by the role they play in an import graph.
type Category string

const (
	CategoryScript     Category = "script"
	CategoryStylesheet Category = "stylesheet"
	CategoryMarkup     Category = "markup"
	CategoryData       Category = "data"
	CategoryAsset      Category = "asset"
	CategoryOther      Category = "other"
)

type typeInfo struct {
	label    string
	category Category
}

// types maps a file type (extension without dot) to its label and category.
var types = map[string]typeInfo{
	"js": {"JavaScript", CategoryScript}, "jsx": {"JavaScript", CategoryScript},
	"mjs": {"JavaScript", CategoryScript}, "cjs": {"JavaScript", CategoryScript},
	"ts": {"TypeScript", CategoryScript}, "tsx": {"TypeScript", CategoryScript},
	"vue": {"Vue", CategoryScript}, "svelte": {"Svelte", CategoryScript},

	"less": {"Less", CategoryStylesheet}, "css": {"CSS", CategoryStylesheet},
	"scss": {"SCSS", CategoryStylesheet}, "sass": {"Sass", CategoryStylesheet},
	"styl": {"Stylus", CategoryStylesheet},

	"html": {"HTML", CategoryMarkup}, "htm": {"HTML", CategoryMarkup},
	"md": {"Markdown", CategoryMarkup}, "mdx": {"Markdown", CategoryMarkup},

	"json": {"JSON", CategoryData}, "yaml": {"YAML", CategoryData}, "yml": {"YAML", CategoryData},
	"graphql": {"GraphQL", CategoryData}, "gql": {"GraphQL", CategoryData},

	"svg": {"SVG", CategoryAsset}, "png": {"PNG", CategoryAsset}, "jpg": {"JPEG", CategoryAsset},
	"jpeg": {"JPEG", CategoryAsset}, "gif": {"GIF", CategoryAsset}, "woff": {"Font", CategoryAsset},
	"woff2": {"Font", CategoryAsset}, "ttf": {"Font", CategoryAsset},
}

// Label returns a human-readable language name for a file type, or "Unknown".
func Label(fileType string) string {
	if info, ok := types[strings.ToLower(fileType)]; ok {
		return info.label
	}
	return "Unknown"
}

// CategoryOf returns the category of a file type.
func CategoryOf(fileType string) Category {
	if info, ok := types[strings.ToLower(fileType)]; ok {
		return info.category
	}
	return CategoryOther
}
