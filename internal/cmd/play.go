package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kestrelworks/trio/internal/config"
	"github.com/kestrelworks/trio/internal/display"
	"github.com/kestrelworks/trio/internal/game"
	"github.com/kestrelworks/trio/internal/logging"
	"github.com/kestrelworks/trio/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Play a game in the terminal. The left keyboard block (qwer/asdf/zxcv)
toggles tokens for the first human player, the right block (uiop/jkl;/m,./)
for the second. Pass --headless to run without the interface, for example
to watch computer players in the logs.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Int("humans", 0, "number of human players")
	playCmd.Flags().Int("computers", 0, "number of computer players")
	playCmd.Flags().Int64("turn-timeout-ms", 0, "round timer in ms (0 counts up, negative disables)")
	playCmd.Flags().Bool("headless", false, "run without the terminal interface")
	playCmd.Flags().Uint64("seed", 0, "random seed for a replayable game")

	_ = viper.BindPFlag("players.human", playCmd.Flags().Lookup("humans"))
	_ = viper.BindPFlag("players.computer", playCmd.Flags().Lookup("computers"))
	_ = viper.BindPFlag("game.turn_timeout_ms", playCmd.Flags().Lookup("turn-timeout-ms"))
}

func runPlay(cmd *cobra.Command, args []string) error {
	if headless, _ := cmd.Flags().GetBool("headless"); headless {
		viper.Set("tui.enabled", false)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer log.Close()

	opts := []game.Option{game.WithLogger(log)}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, game.WithSeed(seed))
	}

	g, err := game.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TUI.Enabled {
		return tui.Run(ctx, g)
	}
	return runHeadless(ctx, g, log)
}

// runHeadless plays the match with a log-backed display and prints the
// winners when it ends.
func runHeadless(ctx context.Context, g *game.Game, log *logging.Logger) error {
	g.SetDisplay(display.NewLogger(log))
	if err := g.Start(ctx); err != nil {
		return err
	}
	winners := g.Wait()
	fmt.Printf("winners: %v\n", winners)
	return nil
}

// buildLogger opens the configured log sink. With the TUI on, stderr is
// part of the screen, so an unset log file is redirected under the config
// directory instead.
func buildLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	path := cfg.Logging.File
	if path == "" && cfg.TUI.Enabled {
		dir := config.ConfigDir()
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "trio.log")
	}
	return logging.NewFile(path, cfg.Logging.Level)
}
