package main

import (
	"birds/pkg/network"
	protocol "birds/pkg/shared/network"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <ws-url>",
	Short: "Follow a running game's spectator feed",
	Example: `  birds play --spectate :8081
  birds watch ws://localhost:8081/ws`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	return network.Watch(cmd.Context(), args[0], func(ev protocol.Event) {
		fields := []zap.Field{zap.String("session", ev.Session)}
		switch ev.Type {
		case protocol.EventLaunch:
			fields = append(fields, zap.String("bird", ev.Kind), zap.Float64("angle", ev.Angle), zap.Float64("impulse", ev.Impulse))
		case protocol.EventAbility:
			fields = append(fields, zap.String("bird", ev.Kind))
		case protocol.EventDestroy:
			fields = append(fields, zap.String("target", ev.Kind), zap.Float64("impulse", ev.Impulse), zap.Int("score", ev.Score))
		case protocol.EventCleared:
			fields = append(fields, zap.Int("score", ev.Score))
		}
		log.Info(string(ev.Type), fields...)
	})
}
