package ignore

// IgnoreFileNames lists the gitignore-syntax files read from the tree root, in precedence order.
var IgnoreFileNames = []string{".gitignore", ".importgraphignore"}

// skippedDirs are never descended into. Checked by name before any pattern matching.
var skippedDirs = map[string]bool{
	".git":             true,
	".svn":             true,
	".hg":              true,
	"node_modules":     true,
	"bower_components": true,
	"jspm_packages":    true,
	".yarn":            true,
	".pnpm-store":      true,
	".idea":            true,
	".vscode":          true,
	".cache":           true,
	".parcel-cache":    true,
	".next":            true,
	".nuxt":            true,
	".turbo":           true,
	"coverage":         true,
	".nyc_output":      true,
	"storybook-static": true,
}

// DefaultIgnorePatterns are doublestar patterns excluded from every analysis: build output,
// generated bundles and files that never carry import statements.
var DefaultIgnorePatterns = []string{
	// Build output
	"**/dist/**",
	"**/build/**",
	"**/out/**",
	"**/.umi/**",
	"**/.umi-production/**",

	// Generated bundles
	"**/*.min.js",
	"**/*.bundle.js",
	"**/*.chunk.js",
	"**/*.map",

	// Type declarations
	"**/*.d.ts",

	// Editor and OS leftovers
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
	"**/Thumbs.db",

	// Lock files and logs
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	"**/*.log",
}
