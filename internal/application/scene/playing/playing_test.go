package playing

import (
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/starcatch/internal/application/replay"
	"github.com/younwookim/starcatch/internal/application/scene"
	"github.com/younwookim/starcatch/internal/application/state"
	"github.com/younwookim/starcatch/internal/application/system"
	"github.com/younwookim/starcatch/internal/domain/entity"
	"github.com/younwookim/starcatch/internal/infrastructure/asset"
	"github.com/younwookim/starcatch/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

type scriptedInput struct {
	state system.InputState
}

func (s *scriptedInput) Poll() system.InputState {
	return s.state
}

type fakeScores struct {
	saved []int
	best  int
	err   error
}

func (f *fakeScores) SaveScore(_ string, score int, _ int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, score)
	return int64(len(f.saved)), nil
}

func (f *fakeScores) HighScore(_ string) (int, error) {
	return f.best, nil
}

// createTestConfig mirrors the shipped defaults
func createTestConfig() *config.GameConfig {
	return &config.GameConfig{
		Host: &config.HostConfig{
			Display: config.DisplayConfig{Width: 800, Height: 600, Scale: 1, TPS: 60, Renderer: "auto"},
			Physics: config.PhysicsConfig{
				Default: "arcade",
				Arcade: config.ArcadeConfig{
					Gravity: config.Vec2{Y: 200},
					Bounds:  config.BoundsConfig{Up: true, Down: true, Left: true, Right: true},
				},
			},
			Scenes: []string{"game-scene"},
		},
		Entities: &config.EntitiesConfig{
			Sprites: map[string]config.SpriteConfig{
				"sky":    {File: "assets/sky.png", Width: 800, Height: 600},
				"ground": {File: "assets/platform.png", Width: 400, Height: 32},
				"star":   {File: "assets/star.png", Width: 24, Height: 22},
				"bomb":   {File: "assets/bomb.png", Width: 14, Height: 14},
				"dude": {
					File: "assets/dude.png", Sheet: true, Width: 32, Height: 48,
					Animations: map[string]config.AnimationConfig{
						"left":  {Start: 0, End: 3, FPS: 10, Repeat: -1},
						"turn":  {Start: 4, End: 4, FPS: 20, Repeat: 0},
						"right": {Start: 5, End: 8, FPS: 10, Repeat: -1},
					},
				},
			},
			Player: config.PlayerConfig{
				Sprite: "dude", Spawn: config.Vec2{X: 100, Y: 450},
				Bounce: 0.2, Speed: 160, JumpVelocity: 330,
			},
			Stars: config.StarsConfig{
				Sprite: "star", Count: 12, Start: config.Vec2{X: 12, Y: 0},
				StepX: 70, BounceMin: 0.4, BounceMax: 0.8, Points: 10,
			},
			Bombs: config.BombsConfig{
				Sprite: "bomb", MaxActive: 4, SpawnY: -16, MaxOffset: 100,
				Speeds: []float64{100, 200}, Bounce: 1,
			},
			Score: config.ScoreConfig{X: 16, Y: 16, FontSize: 32, Color: "#000000"},
		},
	}
}

func createTestStageConfig() *config.StageConfig {
	return &config.StageConfig{
		ID:             "level1",
		Name:           "Sky Platforms",
		Background:     config.BackgroundConfig{Sprite: "sky", X: 400, Y: 300},
		PlatformSprite: "ground",
		Platforms: []config.PlatformConfig{
			{X: 400, Y: 568, Scale: 2},
			{X: 600, Y: 400, Scale: 1},
			{X: 50, Y: 250, Scale: 1},
			{X: 750, Y: 220, Scale: 1},
		},
	}
}

func newTestPlaying(t *testing.T, opts Options) (*Playing, *scriptedInput) {
	t.Helper()
	in := &scriptedInput{}
	if opts.Input == nil {
		opts.Input = in
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	p, err := New(createTestConfig(), createTestStageConfig(), opts)
	require.NoError(t, err)
	return p, in
}

func tick(t *testing.T, p *Playing, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		next, err := p.Update(testDT)
		require.NoError(t, err)
		require.Nil(t, next)
	}
}

func collect(p *Playing, star *entity.Sprite) {
	p.collectStar(p.player, star)
}

func collectAll(p *Playing) {
	p.stars.Iterate(func(s *entity.Sprite) {
		if s.Active {
			collect(p, s)
		}
	})
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})

	assert.Equal(t, state.StatePlaying, p.State())
	assert.False(t, p.IsOver())

	t.Run("platforms", func(t *testing.T) {
		require.Equal(t, 4, p.Platforms().Len())
		ground := p.Platforms().Children[0]
		assert.Equal(t, 800.0, ground.W)
		assert.Equal(t, 64.0, ground.H)
		assert.True(t, ground.Static)
	})

	t.Run("player", func(t *testing.T) {
		player := p.Player()
		assert.Equal(t, 100.0, player.X)
		assert.Equal(t, 450.0, player.Y)
		assert.Equal(t, 0.2, player.BounceY)
		assert.True(t, player.CollideWorldBounds)
		assert.Nil(t, player.Tint)
	})

	t.Run("stars", func(t *testing.T) {
		require.Equal(t, 12, p.Stars().Len())
		for i, s := range p.Stars().Children {
			assert.Equal(t, 12+70*float64(i), s.X)
			assert.Equal(t, 0.0, s.Y)
			assert.GreaterOrEqual(t, s.BounceY, 0.4)
			assert.LessOrEqual(t, s.BounceY, 0.8)
		}
	})

	t.Run("score and bombs", func(t *testing.T) {
		assert.Equal(t, 0, p.Score())
		assert.Equal(t, "Score: 0", p.ScoreLabel().Text())
		assert.Equal(t, 16.0, p.ScoreLabel().X)
		assert.Equal(t, 0, p.Spawner().Group().Len())
	})
}

func TestNewPlaying_UnknownPlatformSprite(t *testing.T) {
	stageCfg := createTestStageConfig()
	stageCfg.PlatformSprite = "lava"

	_, err := New(createTestConfig(), stageCfg, Options{Input: &scriptedInput{}, Logger: log.New(io.Discard)})

	assert.Error(t, err)
}

func TestPlaying_SameSeedSameSession(t *testing.T) {
	a, _ := newTestPlaying(t, Options{Seed: 7})
	b, _ := newTestPlaying(t, Options{Seed: 7})
	c, _ := newTestPlaying(t, Options{Seed: 8})

	differs := false
	for i := range a.Stars().Children {
		assert.Equal(t, a.Stars().Children[i].BounceY, b.Stars().Children[i].BounceY)
		differs = differs || a.Stars().Children[i].BounceY != c.Stars().Children[i].BounceY
	}
	assert.True(t, differs, "a different seed should change star bounce")
}

func TestPlaying_Movement(t *testing.T) {
	tests := []struct {
		name     string
		input    system.InputState
		wantVX   float64
		wantAnim string
	}{
		{"left", system.InputState{Left: true}, -160, "left"},
		{"right", system.InputState{Right: true}, 160, "right"},
		{"idle", system.InputState{}, 0, "turn"},
		{"both", system.InputState{Left: true, Right: true}, -160, "left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, in := newTestPlaying(t, Options{})
			in.state = tt.input

			tick(t, p, 1)

			assert.Equal(t, tt.wantVX, p.Player().VX)
			assert.Equal(t, tt.wantAnim, p.Player().Anims.CurrentKey())
		})
	}
}

func TestPlaying_JumpOnlyWhenGrounded(t *testing.T) {
	p, in := newTestPlaying(t, Options{})

	// Falling from the spawn point: up does nothing
	in.state = system.InputState{Up: true}
	tick(t, p, 1)
	assert.NotEqual(t, -330.0, p.Player().VY)

	// Settle on the ground
	in.state = system.InputState{}
	tick(t, p, 240)
	require.True(t, p.Player().Touching.Down)

	in.state = system.InputState{Up: true}
	tick(t, p, 1)
	assert.Equal(t, -330.0, p.Player().VY)

	// Airborne on the next tick: velocity keeps integrating
	tick(t, p, 1)
	assert.False(t, p.Player().Touching.Down)
	assert.Greater(t, p.Player().VY, -330.0)
}

func TestPlaying_PlayerStaysBelowTheCeiling(t *testing.T) {
	p, in := newTestPlaying(t, Options{})
	player := p.Player()

	// Stand on the high platform at (750, 220)
	player.Reset(750, 180)
	tick(t, p, 60)
	require.True(t, player.Touching.Down)

	in.state = system.InputState{Up: true}
	tick(t, p, 1)
	in.state = system.InputState{}

	minTop := player.Top()
	hitCeiling := player.Blocked.Up
	for i := 0; i < 120; i++ {
		tick(t, p, 1)
		minTop = min(minTop, player.Top())
		hitCeiling = hitCeiling || player.Blocked.Up
	}

	assert.GreaterOrEqual(t, minTop, 0.0, "player must not leave through the top")
	assert.True(t, hitCeiling)
	assert.False(t, p.IsOver())
}

func TestPlaying_CollectStar(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})
	stars := p.Stars().Children

	for k := 1; k < len(stars); k++ {
		collect(p, stars[k-1])

		assert.Equal(t, 10*k, p.Score(), "score after %d collects", k)
		assert.Equal(t, entity.FormatScore(10*k), p.ScoreLabel().Text())
		assert.Equal(t, len(stars)-k, p.Stars().CountActive(true))
		assert.Equal(t, 0, p.Spawner().Group().Len(), "no bomb before the pool is cleared")
		assert.False(t, stars[k-1].Visible)
		assert.False(t, stars[k-1].Enabled)
	}
}

func TestPlaying_ClearingStarsRefillsAndSpawnsOnce(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})
	stars := p.Stars().Children

	for _, s := range stars[:11] {
		s.DisableBody(true, true)
	}
	stars[3].X = 500 // drifted while disabled
	p.Player().X = 300

	collect(p, stars[11])

	assert.Equal(t, 10, p.Score())
	assert.Equal(t, 12, p.Stars().CountActive(true), "whole pool re-enabled")
	for _, s := range stars {
		assert.Equal(t, s.SpawnX, s.X)
		assert.Equal(t, 0.0, s.Y)
		assert.True(t, s.Visible)
		assert.True(t, s.Enabled)
	}

	bombs := p.Spawner().Group()
	require.Equal(t, 1, bombs.Len(), "exactly one bomb per clear")
	assert.InDelta(t, 300, bombs.Children[0].X, 100)
	assert.Equal(t, -16.0, bombs.Children[0].Y)
}

func TestPlaying_BombDropsInsideTheWorld(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})
	p.Player().X = 790

	collectAll(p)

	bomb := p.Spawner().Group().Children[0]
	assert.LessOrEqual(t, bomb.Right(), 800.0)
	assert.GreaterOrEqual(t, bomb.Left(), 0.0)

	// Starts above the screen and is not pushed down by the top edge
	tick(t, p, 1)
	assert.Less(t, bomb.Top(), 0.0)
	assert.False(t, bomb.Blocked.Up)
}

func TestPlaying_BombCapAcrossClears(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})

	for i := 0; i < 4; i++ {
		collectAll(p)
	}
	first := p.Spawner().Group().Children[0]
	first.X, first.Y = 1, 1

	collectAll(p)

	assert.Equal(t, 4, p.Spawner().Group().Len())
	assert.Equal(t, -16.0, first.Y, "5th spawn reuses the first bomb")
	assert.Equal(t, 12*5*10, p.Score())
}

func TestPlaying_HitBomb(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})
	bomb := p.Spawner().Spawn(100)

	p.hitBomb(p.Player(), bomb)

	assert.True(t, p.IsOver())
	assert.Equal(t, state.StateOver, p.State())
	assert.True(t, p.Physics().Paused())
	assert.Equal(t, color.Color(colorHit), p.Player().Tint)
	assert.Equal(t, "turn", p.Player().Anims.CurrentKey())
}

func TestPlaying_OverIsTerminal(t *testing.T) {
	p, in := newTestPlaying(t, Options{})
	tick(t, p, 30)
	p.hitBomb(p.Player(), p.Spawner().Spawn(100))

	player := *p.Player()
	frame := p.Player().CurrentFrame()
	score := p.Score()
	ticks := p.Ticks()

	in.state = system.InputState{Left: true, Up: true}
	tick(t, p, 20)

	assert.Equal(t, player.X, p.Player().X)
	assert.Equal(t, player.Y, p.Player().Y)
	assert.Equal(t, player.VX, p.Player().VX)
	assert.Equal(t, player.VY, p.Player().VY)
	assert.Equal(t, "turn", p.Player().Anims.CurrentKey())
	assert.Equal(t, frame, p.Player().CurrentFrame())
	assert.Equal(t, score, p.Score())
	assert.Equal(t, ticks, p.Ticks())
	assert.Equal(t, state.StateOver, p.State())
}

func TestPlaying_PhysicsDrivesContacts(t *testing.T) {
	t.Run("overlapping a star collects it", func(t *testing.T) {
		p, _ := newTestPlaying(t, Options{})
		star := p.Stars().Children[5]
		star.Reset(p.Player().X, p.Player().Y)

		tick(t, p, 1)

		assert.Equal(t, 10, p.Score())
		assert.False(t, star.Active)
	})

	t.Run("touching a bomb ends the game", func(t *testing.T) {
		p, _ := newTestPlaying(t, Options{})
		bomb := p.Spawner().Spawn(100)
		bomb.Reset(p.Player().X, p.Player().Y)

		tick(t, p, 1)

		assert.True(t, p.IsOver())
		assert.True(t, p.Physics().Paused())
	})

	t.Run("bomb rule runs before star overlap", func(t *testing.T) {
		p, _ := newTestPlaying(t, Options{})
		bomb := p.Spawner().Spawn(100)
		bomb.Reset(p.Player().X, p.Player().Y)
		star := p.Stars().Children[5]
		star.Reset(p.Player().X, p.Player().Y)

		tick(t, p, 1)

		assert.True(t, p.IsOver())
		assert.Equal(t, 0, p.Score(), "paused world stops the overlap check")
		assert.True(t, star.Active)
	})
}

func TestPlaying_SavesScoreOnce(t *testing.T) {
	scores := &fakeScores{best: 10}
	p, _ := newTestPlaying(t, Options{Scores: scores})
	require.Equal(t, 10, p.Best())

	for _, s := range p.Stars().Children[:3] {
		collect(p, s)
	}
	bomb := p.Spawner().Spawn(100)
	p.hitBomb(p.Player(), bomb)
	p.hitBomb(p.Player(), bomb)

	assert.Equal(t, []int{30}, scores.saved)
	assert.Equal(t, 30, p.Best())
}

func TestPlaying_ScoreSaveFailureIsLogged(t *testing.T) {
	scores := &fakeScores{best: 50, err: errors.New("disk full")}
	p, _ := newTestPlaying(t, Options{Scores: scores})

	assert.NotPanics(t, func() { p.hitBomb(p.Player(), p.Spawner().Spawn(100)) })
	assert.True(t, p.IsOver())
	assert.Equal(t, 50, p.Best())
}

func TestPlaying_RecordsUntilGameOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	p, in := newTestPlaying(t, Options{RecordPath: path, Seed: 99})

	in.state = system.InputState{Right: true}
	tick(t, p, 5)
	collect(p, p.Stars().Children[0])
	p.hitBomb(p.Player(), p.Spawner().Spawn(100))
	tick(t, p, 5)
	p.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), data.Seed)
	assert.Equal(t, "level1", data.Stage)
	assert.Equal(t, 10, data.Score)
	require.Len(t, data.Frames, 5)
	for i, f := range data.Frames {
		assert.Equal(t, replay.FrameInput{F: i, R: true}, f)
	}
}

func TestPlaying_OnExitSavesRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quit.json")
	p, _ := newTestPlaying(t, Options{RecordPath: path})

	tick(t, p, 3)
	p.OnExit()

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 3)
}

func TestPlaying_NoRecordingWithoutPath(t *testing.T) {
	p, _ := newTestPlaying(t, Options{})
	tick(t, p, 3)

	assert.Nil(t, p.recorder)
	assert.NotPanics(t, p.OnExit)
}

func TestPreload(t *testing.T) {
	l := asset.NewLoader(fstest.MapFS{})

	Preload(l, createTestConfig())

	pending := l.Pending()
	require.Len(t, pending, 5)
	keys := make([]string, len(pending))
	for i, d := range pending {
		keys[i] = d.Key
	}
	assert.Equal(t, []string{"bomb", "dude", "ground", "sky", "star"}, keys)

	dude := pending[1]
	assert.Equal(t, asset.KindSpriteSheet, dude.Kind)
	assert.Equal(t, 32, dude.FrameW)
	assert.Equal(t, 48, dude.FrameH)
	assert.Equal(t, "assets/platform.png", pending[2].Path)
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder(12345, "test")

	assert.True(t, r.IsRecording())

	r.Stop()

	assert.False(t, r.IsRecording())
}

func TestRecorder_DoesNotRecordWhenStopped(t *testing.T) {
	r := NewRecorder(12345, "test")
	r.Stop()

	r.RecordFrame(system.InputState{Left: true})

	assert.Equal(t, 0, r.FrameCount())
}

func TestRecorder_SaveWithoutFrames(t *testing.T) {
	r := NewRecorder(1, "test")
	path := filepath.Join(t.TempDir(), "empty.json")

	err := r.Save(path)

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRecorder_GetData(t *testing.T) {
	r := NewRecorder(5, "level1")
	r.RecordFrame(system.InputState{Up: true})
	r.RecordFrame(system.InputState{Down: true})
	r.SetScore(20)

	data := r.GetData()

	assert.Equal(t, replay.Version, data.Version)
	assert.Equal(t, 20, data.Score)
	assert.Equal(t, []replay.FrameInput{{F: 0, U: true}, {F: 1, D: true}}, data.Frames)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#000000", color.RGBA{A: 255}, false},
		{"#000", color.RGBA{A: 255}, false},
		{"#ff8000", color.RGBA{R: 255, G: 128, A: 255}, false},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"000000", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
