// Package cmd implements the CLI using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/aASDa213ASD/xlivewall/internal/app"
	"github.com/aASDa213ASD/xlivewall/internal/config"
	"github.com/aASDa213ASD/xlivewall/internal/logging"
	"github.com/aASDa213ASD/xlivewall/internal/surface"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagTimeout float64
	flagSocket  string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "xlivewall [flags] player [file-or-folder] [player-flags...]",
	Short: "Loop a video as the desktop background",
	Long: `Xlivewall keeps a looping video playing as the X desktop background.

The positional arguments are the full player invocation, e.g.
"mpv video.mp4" or "mpv /path/to/videos/" (a folder means a random
pick). The literal token WID in player arguments is replaced with the
background window id. Launching again while an instance is running
replaces the video in the running player instead of starting another.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	// Fatal errors print a single "Error: ..." diagnostic, no usage dump.
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Float64VarP(&flagTimeout, "socket-timeout", "t", 5.0, "Timeout in seconds for control socket readiness")
	rootCmd.Flags().StringVar(&flagSocket, "socket", "", "Control socket path (default from config)")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	// Everything after the first positional belongs to the player, not us.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("xlivewall", Version)
	},
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values.
	if cmd.Flags().Changed("socket-timeout") {
		cfg.SocketTimeoutSecs = flagTimeout
	}
	if flagSocket != "" {
		cfg.SocketPath = flagSocket
	}
	if flagDebug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if len(args) == 0 {
		return fmt.Errorf(`provide a player invocation, e.g. "mpv video.mp4" or "mpv /path/to/videos/"`)
	}

	logger := logging.New(os.Stderr, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer stop()

	return app.Run(ctx, cfg, logger, args, func() (surface.Service, error) {
		return surface.NewX11(logger)
	})
}
