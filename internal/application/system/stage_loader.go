package system

import (
	"fmt"

	"github.com/younwookim/starcatch/internal/domain/entity"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

// LoadStage builds the static platform group described by cfg.
// Each platform is scaled and its body refreshed to the scaled size.
func LoadStage(cfg *config.StageConfig, sprites map[string]config.SpriteConfig) (*entity.Group, error) {
	sc, ok := sprites[cfg.PlatformSprite]
	if !ok {
		return nil, fmt.Errorf("stage %s: unknown platform sprite %q", cfg.ID, cfg.PlatformSprite)
	}

	platforms := entity.NewStaticGroup(cfg.PlatformSprite, float64(sc.Width), float64(sc.Height))
	for _, p := range cfg.Platforms {
		scale := p.Scale
		if scale <= 0 {
			scale = 1
		}
		platforms.Create(p.X, p.Y).SetScale(scale).RefreshBody()
	}
	return platforms, nil
}
