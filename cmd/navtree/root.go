package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dgallion1/navtree/internal/config"
	"github.com/dgallion1/navtree/internal/contents"
	"github.com/dgallion1/navtree/internal/logging"
	"github.com/dgallion1/navtree/internal/navtree"
	"github.com/dgallion1/navtree/internal/parser"
)

var (
	envFile string
	verbose bool
	srcURL  string
	srcFile string
)

var rootCmd = &cobra.Command{
	Use:   "navtree",
	Short: "Build and inspect site navigation trees",
	Long: `navtree loads a contents document (a flat map of pages plus the
ordered root keys) from a URL or a local outline file and turns it into
the nested navigation tree a documentation sidebar renders.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log fetch attempts to stderr")
	rootCmd.PersistentFlags().StringVar(&srcURL, "url", "", "contents document URL (default from NAVTREE_CONTENTS_URL)")
	rootCmd.PersistentFlags().StringVar(&srcFile, "file", "", "read the contents from a local file (.json, .md, .html, .txt, .csv, .pdf, .docx)")
	rootCmd.MarkFlagsMutuallyExclusive("url", "file")

	rootCmd.AddCommand(treeCmd, activeCmd, checkCmd, serveCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}
	if srcURL != "" {
		cfg.ContentsURL = srcURL
	}
	return cfg, cfg.Validate()
}

func cliLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logging.New(os.Stderr, "DEBUG", "text")
}

// loadContent reads the document from --file, or fetches it with retries.
func loadContent(ctx context.Context) (*navtree.Content, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	if srcFile != "" {
		c, err := parser.ParseFile(srcFile)
		if err != nil {
			return nil, cfg, err
		}
		return c, cfg, nil
	}

	client := contents.NewClient(cfg.ContentsURL, cfg.HTTPTimeout)
	defer client.Close()

	f := contents.NewFetcher(client, cfg.RetryPolicy(), nil, cliLogger().With("url", cfg.ContentsURL))
	f.Fetch(ctx)
	st := f.State()
	if st.LastError != nil {
		return nil, cfg, fmt.Errorf("fetch contents: %w", st.LastError)
	}
	return st.Result, cfg, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}
