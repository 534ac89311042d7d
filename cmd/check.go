package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/tools"
)

var errCheckFailed = errors.New("import check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report imports that no longer resolve",
	Long: `Resolve every import statement of every script and report dangling imports, scripts
whose walk failed, import cycles, and dependencies outside the root. Exits non-zero when an
import dangles or a script failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		s.config.Strict = false
		p, err := openProject(s, cliLogger())
		if err != nil {
			return err
		}
		defer p.Close()

		result, err := p.Check()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tools.FormatCheck(p.RootDir(), result))
		if !result.OK() {
			return errCheckFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
