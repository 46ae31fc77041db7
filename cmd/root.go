package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"droidclip/pkg/adb"
	"droidclip/pkg/clipboard"
	"droidclip/pkg/completions"
	"droidclip/pkg/config"
	"droidclip/pkg/errors"
	"droidclip/pkg/logger"

	"github.com/spf13/cobra"
)

const (
	unknownValue = "unknown"
)

var (
	Version   string
	BuildTime string
	GitCommit string
)

var defaultTimeout = 30 * time.Second
var globalTimeout time.Duration
var methodFlag string
var portFlag int
var serialFlag string
var adbPathFlag string
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "droidclip",
	Short: "Android device clipboard tool",
	Long: `CLI tool for reading and writing an Android device's clipboard through
the Droidrun Portal app. Talks to the device over an adb content-provider
call or an HTTP socket server behind a port forward, with full Unicode
and emoji support.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if globalTimeout <= 0 {
			globalTimeout = defaultTimeout
		}
		// Set log level: explicit flag takes precedence over env var
		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			if envLevel := os.Getenv("DROIDCLIP_LOG_LEVEL"); envLevel != "" {
				level = envLevel
			}
		}
		logger.SetLevel(level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		fmt.Printf("droidclip version %s\n", ver)
		fmt.Printf("Built: %s\n", bt)
		fmt.Printf("Git commit: %s\n", gc)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

// GetContext returns a context bound to the --timeout flag and to
// SIGINT, so a ^C during a blocked transport call unwinds cleanly.
func GetContext() (context.Context, context.CancelFunc) {
	timeout := globalTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return getContextWithTimeout(timeout)
}

func getContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// mapCancellation routes interrupt-driven failures to the 130 exit path.
func mapCancellation(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == context.Canceled {
		fmt.Fprintln(os.Stderr, "\nInterrupted by user")
		return errors.Silent(errors.ExitCodeInterrupt)
	}
	return err
}

// newClient builds the clipboard facade from the config file overlaid
// with whatever flags the user set on this invocation.
func newClient(cmd *cobra.Command) (*clipboard.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Clipboard.Method = methodFlag
	}
	if flags.Changed("port") {
		cfg.Clipboard.Port = portFlag
	}
	if flags.Changed("serial") {
		cfg.Bridge.Serial = serialFlag
	}
	if flags.Changed("adb-path") {
		cfg.Bridge.Path = adbPathFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	method, err := clipboard.ParseMethod(cfg.Clipboard.Method)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	bridge := adb.NewManager(cfg.Bridge.Path, cfg.Bridge.Serial)
	if method == clipboard.MethodADB && !bridge.IsAvailable() {
		return nil, errors.BridgeNotFoundError()
	}

	return clipboard.New(clipboard.Options{
		Method:    method,
		Port:      cfg.Clipboard.Port,
		Authority: cfg.Clipboard.Authority,
		Bridge:    bridge,
	}), nil
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&methodFlag, "method", config.DefaultMethod, "Transport method (auto, http, adb)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", config.DefaultPort, "HTTP socket server port")
	rootCmd.PersistentFlags().StringVarP(&serialFlag, "serial", "s", "", "Device serial (when several devices are attached)")
	rootCmd.PersistentFlags().StringVar(&adbPathFlag, "adb-path", "", "Path to the adb binary (default: look up on PATH)")
	rootCmd.PersistentFlags().DurationVar(&globalTimeout, "timeout", defaultTimeout, "Timeout per command (e.g., 30s, 1m)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, fatal, panic)")

	completions.RegisterCompletions(rootCmd)
}
