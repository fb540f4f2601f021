package main

import (
	"context"
	"time"

	"birds/pkg/client"
	"birds/pkg/game"
	"birds/pkg/network"
	"birds/pkg/shared/config"
	protocol "birds/pkg/shared/network"
	"birds/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagSpectate string
	flagAssets   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Controls:
  Left mouse drag - Aim; release to launch from the release point
  R / Y / B       - Select red, yellow or blue bird
  G               - Boost the flying yellow bird
  F               - Split the flying blue bird in three
  Esc             - Quit (the session is saved)`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve the spectator feed on this address, e.g. :8081")
	playCmd.Flags().StringVar(&flagAssets, "assets", "assets/img", "Directory with PNG sprite overrides")
}

func runPlay(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var sink protocol.EventSink = protocol.Discard
	if flagSpectate != "" {
		hub := network.NewHub(log.Named("spectate"))
		sink = hub
		g.Go(func() error {
			log.Info("spectator feed listening", zap.String("addr", flagSpectate), zap.String("path", config.SpectatePath))
			return network.Serve(gctx, flagSpectate, hub)
		})
	}

	level := game.NewLevel(cfg, log.Named("game"), sink)
	runErr := client.Run(client.NewGame(cfg, level, flagAssets, log))

	cancel()
	if err := g.Wait(); err != nil {
		log.Warn("spectator feed stopped", zap.Error(err))
	}

	stats := level.Stats()
	err = store.SaveSession(storage.Session{
		ID:       stats.Session,
		Score:    stats.Score,
		Launched: stats.Launched,
		Columns:  stats.Columns,
		Pigs:     stats.Pigs,
		Cleared:  stats.Cleared,
		Duration: stats.Elapsed.Round(time.Millisecond),
	})
	if err != nil {
		log.Error("cannot save session", zap.Error(err))
	} else {
		log.Info("session saved", zap.String("session", stats.Session), zap.Int("score", stats.Score))
	}

	return runErr
}
