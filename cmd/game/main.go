// starcatch is a one-screen platformer: collect the stars, avoid the bombs.
//
// Usage:
//
//	starcatch                 - Play (arrow keys move and jump, Esc quits)
//	starcatch scores          - Show high scores for a stage
//	starcatch replay <file>   - Re-run a recording without opening a window
//
// Global flags:
//
//	--config <dir>  - Load YAML config from a directory instead of the built-in one
//	--stage <name>  - Stage to play (default: level1)
//	--db <path>     - Set database path (default: ~/.starcatch/scores.db)
//	--debug         - Verbose logging
package main

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/starcatch/internal/application/game"
	"github.com/younwookim/starcatch/internal/application/scene"
	"github.com/younwookim/starcatch/internal/application/scene/loading"
	"github.com/younwookim/starcatch/internal/application/scene/playing"
	"github.com/younwookim/starcatch/internal/application/system"
	"github.com/younwookim/starcatch/internal/infrastructure/asset"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
	"github.com/younwookim/starcatch/internal/infrastructure/storage"
)

var (
	// Global flags
	flagConfig string
	flagStage  string
	flagDBPath string
	flagDebug  bool

	// Play flags
	flagSeed   int64
	flagRecord string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starcatch",
	Short: "Star Catch - collect the stars, avoid the bombs",
	Long: `Star Catch is a small arcade platformer.

Controls:
  Left/Right - Run
  Up         - Jump (while standing on something)
  Esc        - Quit

Examples:
  starcatch
  starcatch --seed 42 --record run.json
  starcatch replay run.json
  starcatch scores`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory with game.yaml, entities.yaml and stages/ (default: built-in)")
	rootCmd.PersistentFlags().StringVar(&flagStage, "stage", "level1", "Stage to play")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starcatch/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g. --record replay.json)")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starcatch",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func newConfigLoader() (*config.Loader, error) {
	if flagConfig != "" {
		return config.NewLoader(flagConfig), nil
	}
	fsys, err := fs.Sub(embedded, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "embedded"), nil
}

// loadConfig loads and validates the base config plus one stage.
func loadConfig(stage string) (*config.GameConfig, *config.StageConfig, error) {
	loader, err := newConfigLoader()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config from %s: %w", loader.BasePath(), err)
	}
	stageCfg, err := loader.LoadStage(stage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load stage: %w", err)
	}
	return cfg, stageCfg, nil
}

// graphicsLibrary maps the renderer hint from game.yaml
func graphicsLibrary(renderer string) (ebiten.GraphicsLibrary, error) {
	switch renderer {
	case "", "auto":
		return ebiten.GraphicsLibraryAuto, nil
	case "opengl":
		return ebiten.GraphicsLibraryOpenGL, nil
	case "directx":
		return ebiten.GraphicsLibraryDirectX, nil
	case "metal":
		return ebiten.GraphicsLibraryMetal, nil
	default:
		return ebiten.GraphicsLibraryUnknown, fmt.Errorf("unknown renderer %q", renderer)
	}
}

func runGame(_ *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, stageCfg, err := loadConfig(flagStage)
	if err != nil {
		return err
	}
	d := cfg.Host.Display
	lib, err := graphicsLibrary(d.Renderer)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var scores playing.ScoreStore
	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer func() { _ = store.Close() }()
		scores = store
	}

	create := func(textures *asset.Store) (scene.Scene, error) {
		return playing.New(cfg, stageCfg, playing.Options{
			Input:      system.KeyboardInput{},
			Seed:       seed,
			Textures:   textures,
			Scores:     scores,
			Logger:     logger,
			RecordPath: flagRecord,
		})
	}
	preload := func(l *asset.Loader) {
		playing.Preload(l, cfg)
	}
	boot := loading.New(asset.NewLoader(embedded), preload, create, logger)

	g := game.New(boot, d.Width, d.Height)
	g.SetDT(1.0 / float64(d.TPS))

	ebiten.SetWindowSize(d.Width*d.Scale, d.Height*d.Scale)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetTPS(d.TPS)

	logger.Debug("starting", "scenes", cfg.Host.Scenes, "stage", stageCfg.ID, "renderer", d.Renderer)
	if err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{GraphicsLibrary: lib}); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
