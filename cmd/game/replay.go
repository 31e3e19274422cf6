package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/starcatch/internal/application/replay"
	"github.com/younwookim/starcatch/internal/application/scene/playing"
	"github.com/younwookim/starcatch/internal/application/state"
	"github.com/younwookim/starcatch/internal/application/system"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recording without a window",
	Long: `Replay a recording made with --record using its seed and stage,
then print how the session ended.

Examples:
  starcatch replay run.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

// replayResult is how a replayed session ended
type replayResult struct {
	Ticks int
	Score int
	State state.GameState
	Bombs int
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}
	cfg, stageCfg, err := loadConfig(data.Stage)
	if err != nil {
		return err
	}

	res, err := simulate(cfg, stageCfg, *data, logger)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ticks=%d score=%d state=%s bombs=%d\n",
		res.Ticks, res.Score, res.State, res.Bombs)
	if res.Score != data.Score {
		logger.Warn("replay diverged from recording", "recorded", data.Score, "replayed", res.Score)
	}
	return nil
}

// simulate feeds the recorded frames into a fresh scene until the
// recording runs out or the game ends.
func simulate(cfg *config.GameConfig, stageCfg *config.StageConfig, data replay.ReplayData, logger *log.Logger) (replayResult, error) {
	src := system.NewReplayInput(replay.NewReplayer(data))
	p, err := playing.New(cfg, stageCfg, playing.Options{
		Input:  src,
		Seed:   data.Seed,
		Logger: logger,
	})
	if err != nil {
		return replayResult{}, err
	}

	dt := 1.0 / float64(cfg.Host.Display.TPS)
	for !src.Done() && !p.IsOver() {
		if _, err := p.Update(dt); err != nil {
			return replayResult{}, err
		}
	}

	return replayResult{
		Ticks: p.Ticks(),
		Score: p.Score(),
		State: p.State(),
		Bombs: p.Spawner().Live(),
	}, nil
}
