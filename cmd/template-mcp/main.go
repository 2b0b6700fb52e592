package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/template-match-mcp/internal/config"
	"github.com/ironsheep/template-match-mcp/internal/logging"
	"github.com/ironsheep/template-match-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := newRootCmd(os.LookupEnv, os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Settings come from lookup first and
// are overridden by flags.
func newRootCmd(lookup func(string) (string, bool), stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		logLevel   string
		logFormat  string
		sequential bool
	)

	root := &cobra.Command{
		Use:   server.ServerName,
		Short: "MCP server for normalized cross-correlation template matching",
		Long: `template-match-mcp scores every placement of a template inside an image with
normalized cross-correlation and extracts well-separated match locations.

It communicates via MCP protocol over stdin/stdout; configure it in your MCP
client. Logs are written to stderr.

Environment variables:
  TEMPLATE_MCP_LOG_LEVEL        debug, info, warn, error
  TEMPLATE_MCP_LOG_FORMAT       pretty, text, json
  TEMPLATE_MCP_MAX_PEAKS        default max_count for template_find_peaks
  TEMPLATE_MCP_MIN_SEPARATION   default min_separation in pixels
  TEMPLATE_MCP_MAX_ITERATIONS   default candidate budget (0 = 50)
  TEMPLATE_MCP_SEQUENTIAL       compute surfaces on a single goroutine`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv(lookup)
			if err != nil {
				return fmt.Errorf("invalid environment: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("sequential") {
				cfg.Sequential = sequential
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
			logger.Debug("starting server",
				"version", Version,
				"build_time", BuildTime,
				"commit", GitCommit,
				"max_peaks", cfg.Peaks.MaxCount,
				"min_separation", cfg.Peaks.MinSeparation,
				"sequential", cfg.Sequential,
			)

			srv := server.New(cfg, logger, Version)
			if err := srv.Serve(stdin, stdout); err != nil {
				logger.Error("server stopped", "error", err)
				return err
			}
			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", logging.FormatPretty, "log format: pretty, text, json")
	flags.BoolVar(&sequential, "sequential", false, "compute correlation surfaces on a single goroutine")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", server.ServerName, Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
