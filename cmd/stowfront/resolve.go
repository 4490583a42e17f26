package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowfront"
	"github.com/sagarc03/stowfront/config"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Print the object key each request path maps to",
	Long: `Resolve request paths into object keys using the configured key
prefix, exactly as the server would, without contacting the backend.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	prefix := cfg.Proxy().KeyPrefix
	out := cmd.OutOrStdout()
	for _, arg := range args {
		key := stowfront.ResolveKey(stowfront.CleanPath(arg), prefix)
		if _, err := fmt.Fprintln(out, key); err != nil {
			return err
		}
	}
	return nil
}
