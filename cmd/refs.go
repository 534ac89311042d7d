package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/source"
	"github.com/lexandro/importgraph-mcp/tools"
)

var refsTransitive bool

var refsCmd = &cobra.Command{
	Use:   "refs <file>",
	Short: "List the files importing a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		p, err := openProject(s, cliLogger())
		if err != nil {
			return err
		}
		defer p.Close()

		file, err := p.Open(args[0])
		if err != nil {
			return err
		}
		tree, err := p.Tree()
		if err != nil {
			return err
		}

		var referencers []source.File
		if refsTransitive {
			referencers = tree.References.Affected(file)
		} else {
			seen := make(map[source.File]bool)
			for _, referencer := range tree.References.Referencers(file) {
				if !seen[referencer] {
					seen[referencer] = true
					referencers = append(referencers, referencer)
				}
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), tools.FormatReferencers(p.RootDir(), file, referencers, refsTransitive))
		return nil
	},
}

func init() {
	refsCmd.Flags().BoolVar(&refsTransitive, "transitive", false, "Also list files reaching the file through other imports")
	rootCmd.AddCommand(refsCmd)
}
