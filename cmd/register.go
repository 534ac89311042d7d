package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexandro/importgraph-mcp/register"
)

var registerName string

var registerCmd = &cobra.Command{
	Use:   "register <project|user> [directory] [-- server flags]",
	Short: "Add the server to an MCP client configuration",
	Long: `Add or update the server entry of an MCP client configuration file.

  register project [directory]   writes <directory>/.mcp.json (default: .)
  register user                  writes ~/.claude.json

Arguments after "--" are forwarded to the server, e.g.
  register project . -- serve --alias-root src`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		positional, serverArgs := args, []string(nil)
		if dash := cmd.ArgsLenAtDash(); dash >= 0 {
			positional, serverArgs = args[:dash], args[dash:]
		}
		if len(positional) == 0 || len(positional) > 2 {
			return fmt.Errorf("expected a scope and an optional directory, got %v", positional)
		}
		if len(serverArgs) == 0 {
			serverArgs = []string{"serve"}
		}

		options := register.Options{
			Scope:      positional[0],
			ServerName: registerName,
			ServerArgs: serverArgs,
		}
		if len(positional) == 2 {
			if options.Scope != register.ScopeProject {
				return fmt.Errorf("a directory is only accepted for the %q scope", register.ScopeProject)
			}
			options.Directory = positional[1]
		}

		configPath, err := register.Register(options)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered in %s\n", configPath)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Server name (default: derived from the binary name)")
	rootCmd.AddCommand(registerCmd)
}
