package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/tools"
)

var depsCmd = &cobra.Command{
	Use:   "deps <file>",
	Short: "Print the dependency tree of a script",
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
		walk, err := p.Walker().Walk(file)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tools.FormatDependencyTree(p.RootDir(), walk))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
