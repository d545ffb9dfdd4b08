// Package game hosts the controller demo: one character in an empty world,
// driven by SDL input, with live config reload.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/charctl/internal/config"
	"github.com/Faultbox/charctl/internal/engine/input"
	"github.com/Faultbox/charctl/internal/engine/input/sdlinput"
	"github.com/Faultbox/charctl/internal/engine/window"
	"github.com/Faultbox/charctl/internal/game/world"
	"github.com/Faultbox/charctl/internal/logger"
	"github.com/Faultbox/charctl/internal/report"
)

// Game is the demo instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	input    *sdlinput.Device
	world    *world.World
	player   *world.Character
	watcher  *config.Watcher
	reporter *report.Reporter
	log      *zap.Logger
}

// New opens the window and spawns the player character.
func New(cfg *config.Config, reporter *report.Reporter) (*Game, error) {
	g := &Game{
		config:   cfg,
		reporter: reporter,
		log:      logger.Named("game"),
	}

	var err error
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	g.input = sdlinput.New()
	sdlinput.CaptureMouse(true)

	g.world = world.New(world.WithReporter(reporter))
	g.player, err = g.world.Spawn(cfg)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to spawn player: %w", err)
	}

	if cfg.Path != "" {
		g.watcher, err = config.NewWatcher(cfg.Path, config.DefaultDebounce)
		if err != nil {
			// Hot reload is a convenience; run without it.
			g.log.Warn("config watcher disabled", zap.String("path", cfg.Path), zap.Error(err))
		}
	}

	g.log.Info("game initialized",
		zap.Stringer("player", g.player.Body),
		zap.String("backend", cfg.Body.Backend),
	)
	return g, nil
}

// Run starts the main loop. It returns when the window closes or Escape is
// pressed.
func (g *Game) Run() error {
	defer g.reporter.Recover()
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == sdlinput.EventWindowResize {
				g.window.Resize(event.Width, event.Height)
			}
		}
		if g.input.JustPressed(input.KeyEscape) {
			g.running = false
			break
		}

		g.applyReloads()

		if _, err := g.world.Update(dt, g.input); err != nil {
			// Already logged and reported per character.
			g.log.Debug("frame had failures", zap.Error(err))
		}

		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			pos := g.player.Backend.Position()
			g.window.SetTitle(fmt.Sprintf("%s  %d fps  pos %.1f %.1f %.1f",
				g.config.Window.Title, frameCount, pos.X(), pos.Y(), pos.Z()))
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// applyReloads drains pending config reloads without blocking.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Reloads:
			if !ok {
				g.watcher = nil
				return
			}
			g.config = cfg
			g.world.Retune(cfg)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("config reload rejected", zap.Error(err))
		default:
			return
		}
	}
}

// render clears to a colour that reflects the player's state: sky blue on
// the ground, lighter while airborne, violet while flying.
func (g *Game) render() {
	c := mgl32.Vec3{0.35, 0.55, 0.8}
	switch ctl := g.player.Controller; {
	case ctl.Fly:
		c = mgl32.Vec3{0.5, 0.4, 0.75}
	case ctl.Jumping:
		c = mgl32.Vec3{0.55, 0.75, 0.95}
	}
	g.window.Clear(c.X(), c.Y(), c.Z())
}

// Close releases the watcher, input capture and window.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	sdlinput.CaptureMouse(false)
	if g.window != nil {
		g.window.Close()
	}
}
