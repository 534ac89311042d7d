package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/rewrite"
	"github.com/lexandro/importgraph-mcp/tools"
)

var rewriteFlags struct {
	dryRun   bool
	category string
	glob     string
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rename imported stylesheets to CSS modules and rewrite their imports",
	Long: `Rename every imported file of the selected category (default: less) from name.less to
name.module.less and rewrite the imports of each referencing file. Without --dry-run=false
only the planned renames and line diffs are printed.`,
	Args: cobra.NoArgs,
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

		sel := rewrite.Selector{Category: s.config.Rewrite.Category, Glob: s.config.Rewrite.Glob}
		if cmd.Flags().Changed("category") {
			sel.Category = rewriteFlags.category
		}
		if cmd.Flags().Changed("glob") {
			sel.Glob = rewriteFlags.glob
		}

		plan, err := p.PlanRewrite(sel)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if rewriteFlags.dryRun || len(plan.Conflicts) > 0 {
			diffs, err := rewrite.Preview(plan)
			if err != nil {
				return err
			}
			fmt.Fprint(out, tools.FormatPlan(p.RootDir(), plan, diffs))
			if len(plan.Conflicts) > 0 && !rewriteFlags.dryRun {
				return fmt.Errorf("%w: resolve the conflicts above first", rewrite.ErrRenameConflict)
			}
			return nil
		}

		result, err := p.ApplyRewrite(plan)
		if result != nil {
			fmt.Fprint(out, tools.FormatApplyResult(p.RootDir(), result))
		}
		if err != nil {
			return errors.Join(errors.New("rewrite stopped, run check to find imports left dangling"), err)
		}
		return nil
	},
}

func init() {
	f := rewriteCmd.Flags()
	f.BoolVar(&rewriteFlags.dryRun, "dry-run", true, "Only print the planned renames and diffs")
	f.StringVar(&rewriteFlags.category, "category", rewrite.DefaultCategory, "File type to rename")
	f.StringVar(&rewriteFlags.glob, "glob", "", "Only rename files matching this glob, relative to the root")
	rootCmd.AddCommand(rewriteCmd)
}
