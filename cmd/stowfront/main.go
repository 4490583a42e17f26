package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/stowfront/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "stowfront",
	Short:   "Serve static sites straight out of an S3 bucket",
	Long: `Stowfront is a small HTTP front end that maps request paths onto
object keys in a bucket and streams the objects back with their
caching and content headers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")
		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: s3, filesystem (default: s3, env: STOWFRONT_STORAGE_BACKEND)")
	rootCmd.PersistentFlags().String("bucket", "", "bucket to serve from (env: S3_BUCKET)")
	rootCmd.PersistentFlags().String("key-prefix", "", "prefix prepended to every object key (env: KEY_PREFIX)")
	rootCmd.PersistentFlags().String("endpoint", "", "custom S3 endpoint URL (env: AWS_ENDPOINT_URL_S3)")
	rootCmd.PersistentFlags().String("storage-path", "", "directory served by the filesystem backend (env: STOWFRONT_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
