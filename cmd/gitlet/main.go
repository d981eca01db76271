package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/config"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code. Failures
// print a single line on stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Debug("command failed", "error", err)
		fmt.Fprintln(stderr, userMessage(err))
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "gitlet",
		Short:         "Gitlet - a small version-control system",
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd, nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return newNoCommandError()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newIncorrectOperandsError(err)
	})

	root.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newCommitCmd(),
		newRmCmd(),
		newLogCmd(),
		newGlobalLogCmd(),
		newFindCmd(),
		newStatusCmd(),
		newBranchCmd(),
		newRmBranchCmd(),
		newCheckoutCmd(),
		newResetCmd(),
		newMergeCmd(),
		newConfigCmd(),
	)
	return root
}

// configureLogging installs the default logger. Repository settings give the
// starting point and explicitly set flags win over them.
func configureLogging(cmd *cobra.Command, cfg *config.Config) {
	lc := config.Default().Logger()
	if cfg != nil {
		lc = cfg.Logger()
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		if level, err := logger.ParseLevel(s); err == nil {
			lc.Level = level
		}
	}
	if flags.Changed("log-format") {
		s, _ := flags.GetString("log-format")
		if format, err := logger.ParseFormat(s); err == nil {
			lc.Format = format
		}
	}
	if v, _ := flags.GetBool("verbose"); v {
		lc.Level = logger.LevelDebug
	}

	lc.Output = os.Stderr
	logger.Default = logger.New(lc)
}
