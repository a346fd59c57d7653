// Path: cmd/browse/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	apiURL  string
	apiPath string
	search  string
	limit   int64
	pages   int
	show    int
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the article listing from a terminal",
	Long: `browse drives the infinite-scroll article listing against an article API.

It loads the first page (optionally filtered by --search), then "scrolls"
--pages times, printing every accumulated article. --show N opens the detail
view of the N-th article.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context(), cmd.OutOrStdout(), browseOptions{
			APIURL:  apiURL,
			APIPath: apiPath,
			Search:  search,
			Limit:   limit,
			Pages:   pages,
			Show:    show,
			Timeout: timeout,
		}, logger)
	},
}

func init() {
	rootCmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080", "base URL of the article API")
	rootCmd.Flags().StringVar(&apiPath, "path", "/api/proxy", "listing endpoint path")
	rootCmd.Flags().StringVarP(&search, "search", "s", "", "filter by title or author")
	rootCmd.Flags().Int64Var(&limit, "limit", 10, "articles per page")
	rootCmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	rootCmd.Flags().IntVar(&show, "show", 0, "open the detail view of the N-th article (1-based)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
