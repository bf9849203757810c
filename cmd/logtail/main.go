package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/logtail/internal/app"
	"github.com/five82/logtail/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logtail: %v\n", err)
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		lines       int
		filter      string
		query       string
		noColor     bool
		lineNumbers bool
		follow      bool
		noFollow    bool
		highlight   bool
		poll        time.Duration
		watchMode   string
		identity    string
		interactive bool
		diagFile    string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "logtail [flags] FILE",
		Short: "Follow a log file with filtering and severity colors",
		Long: `Print the last lines of FILE, then keep printing lines as they are
appended. Truncated and rotated files are picked up from the start.

Defaults can be set in ~/.config/logtail/config.toml.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			flags := cmd.Flags()
			ov := config.Overrides{
				File:          args[0],
				FilterPattern: filter,
				QueryText:     query,
				NoColor:       noColor,
				Highlight:     highlight,
				Interactive:   interactive,
				Verbose:       verbose,
			}
			if flags.Changed("lines") {
				ov.Lines = &lines
			}
			if flags.Changed("line-numbers") {
				ov.LineNumbers = &lineNumbers
			}
			if flags.Changed("follow") {
				ov.Follow = &follow
			}
			if noFollow {
				off := false
				ov.Follow = &off
			}
			if flags.Changed("poll") {
				ov.PollInterval = &poll
			}
			if flags.Changed("watch") {
				ov.Watch = &watchMode
			}
			if flags.Changed("identity") {
				ov.Identity = &identity
			}
			if flags.Changed("diag-file") {
				ov.DiagFile = &diagFile
			}

			settings, err := config.Resolve(cfg, ov)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), app.Options{
				Settings: settings,
				Stdout:   cmd.OutOrStdout(),
				Stderr:   cmd.ErrOrStderr(),
				Stdin:    cmd.InOrStdin(),
			})
		},
	}

	f := cmd.Flags()
	f.IntVarP(&lines, "lines", "n", 10, "number of trailing lines to show first")
	f.StringVarP(&filter, "filter", "f", "", "only show lines matching this regular expression")
	f.StringVarP(&query, "query", "q", "", "only show lines containing this text (case-insensitive)")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	f.BoolVarP(&lineNumbers, "line-numbers", "l", false, "prefix shown lines with a sequence number")
	f.BoolVar(&follow, "follow", true, "keep printing appended lines")
	f.BoolVar(&noFollow, "no-follow", false, "print the trailing lines and exit")
	f.BoolVar(&highlight, "highlight", false, "highlight matches (on when --filter or --query is given)")
	f.DurationVar(&poll, "poll", time.Second, "poll interval")
	f.StringVar(&watchMode, "watch", config.WatchNotify, "change detection: fsnotify or poll")
	f.StringVar(&identity, "identity", config.IdentityInode, "rotation detection: inode or fingerprint")
	f.StringVar(&configPath, "config", "", "config file (default ~/.config/logtail/config.toml)")
	f.BoolVar(&interactive, "interactive", false, "open the scrollable viewer")
	f.StringVar(&diagFile, "diag-file", "", "also write diagnostics as JSON to this file")
	f.BoolVar(&verbose, "verbose", false, "debug diagnostics and a summary at exit")
	cmd.MarkFlagsMutuallyExclusive("follow", "no-follow")

	return cmd
}
