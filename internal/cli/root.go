// Package cli implements postsctl, a command line client for the posts API.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/posts-demo/internal/client"
	"github.com/information-sharing-networks/posts-demo/internal/config"
	"github.com/information-sharing-networks/posts-demo/internal/logger"
	"github.com/information-sharing-networks/posts-demo/internal/version"
)

// app holds what the subcommands share once PersistentPreRunE has loaded the configuration
type app struct {
	cfg       *config.ClientEnvironment
	appLogger *slog.Logger
	client    *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "postsctl",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "posts API client",
		Long:              `postsctl lists, creates, updates and deletes blog posts through the posts API (POSTS_API_URL)`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewClientConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			a.cfg = cfg
			a.appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
			a.client = client.New(cfg.APIURL, client.WithTimeout(cfg.ClientTimeout))

			a.appLogger.Debug("using posts API", slog.String("url", cfg.APIURL))
			return nil
		},
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	rootCmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
