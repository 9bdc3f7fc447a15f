package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/entity"
	"github.com/milk9111/collide/ecs/system"
	"github.com/milk9111/collide/ecs/system/debug"
	"github.com/milk9111/collide/ecs/system/input"
	"github.com/milk9111/collide/levels"
	"github.com/milk9111/collide/prefabs"
)

const (
	baseWidth  = 960
	baseHeight = 544

	bulletLifetime = 90
	bulletOffset   = 12
)

var backgroundColor = color.RGBA{0x14, 0x16, 0x1c, 0xff}

type Game struct {
	levelName string
	debug     bool
	forceX    bool
	paused    bool
	stepOnce  bool

	spec      *prefabs.SandboxSpec
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scene     *levels.Scene
	view      debug.View
	width     int
	height    int

	bullets map[ecs.Entity]int
	expired []ecs.Entity

	watcher *prefabs.Watcher
}

func NewGame(levelName string, showDebug, forceX, watch bool) (*Game, error) {
	g := &Game{
		levelName: levelName,
		debug:     showDebug,
		forceX:    forceX,
		width:     baseWidth,
		height:    baseHeight,
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	if watch {
		g.startWatcher()
	}
	return g, nil
}

// reload rebuilds the world from sandbox.yaml and the level. The old
// world is kept when the files fail to load or spawn.
func (g *Game) reload() error {
	spec, err := prefabs.LoadSandboxSpec()
	if err != nil {
		return err
	}
	lvl, err := levels.LoadLevel(g.levelName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	scene, err := levels.Spawn(w, lvl)
	if err != nil {
		return err
	}

	physics := system.NewPhysicsSystem()
	physics.Collision.Gravity = cp.Vector{X: spec.GravityX, Y: spec.GravityY}
	physics.Collision.ForceX = g.forceX || spec.ForceX
	physics.Collision.Debug = g.debug
	if g.physics != nil {
		physics.Collision.Scripts = g.physics.Collision.Scripts
		physics.Collision.Scripts.Invalidate()
	}

	g.spec = spec
	g.world = w
	g.scene = scene
	g.physics = physics
	g.scheduler = ecs.NewScheduler(
		input.NewSystem(),
		system.NewControlSystem(),
		system.NewPatrolSystem(),
		physics,
	)
	g.view = debug.View{Zoom: spec.Zoom}
	g.bullets = make(map[ecs.Entity]int)
	if lvl.Width > 0 && lvl.TileSize > 0 {
		g.width, g.height = lvl.Width*lvl.TileSize, lvl.Height*lvl.TileSize
	}

	if err := g.attachController(); err != nil {
		return err
	}
	g.attachTriggers()
	log.Printf("sandbox: loaded level %q (%d entities)", lvl.Name, len(ecs.Entities(w)))
	return nil
}

func (g *Game) attachController() error {
	e, ok := g.scene.Named[g.spec.Controlled]
	if !ok {
		return nil
	}
	if err := ecs.Add(g.world, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return err
	}
	return ecs.Add(g.world, e, component.ControllerComponent.Kind(), &component.Controller{
		MoveSpeed: g.spec.MoveSpeed,
		JumpSpeed: g.spec.JumpSpeed,
		Facing:    1,
	})
}

// attachTriggers logs bodies entering and leaving overlap-mode colliders.
func (g *Game) attachTriggers() {
	ecs.ForEach(g.world, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if c.Mode != component.CollisionModeOverlap {
			return
		}
		c.OnOverlapStart = func(self, other uint64) {
			log.Printf("sandbox: %s entered by %s", ecs.Entity(self), ecs.Entity(other))
		}
		c.OnOverlapStop = func(self, other uint64) {
			log.Printf("sandbox: %s left by %s", ecs.Entity(self), ecs.Entity(other))
		}
	})
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts"), "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		log.Printf("sandbox: nothing to watch from %s", mustGetwd())
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("sandbox: watch: %v", err)
		return
	}
	g.watcher = w
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsScriptFile(name) {
				log.Printf("sandbox: script %s changed", name)
				g.physics.Collision.Scripts.Invalidate()
				continue
			}
			log.Printf("sandbox: %s changed, reloading", name)
			if err := g.reload(); err != nil {
				log.Printf("sandbox: reload: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("sandbox: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.debug = !g.debug
		g.physics.Collision.Debug = g.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.reload(); err != nil {
			log.Printf("sandbox: reload: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.stepOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.physics.Collision.ForceX = !g.physics.Collision.ForceX
	}

	if g.paused && !g.stepOnce {
		return nil
	}
	g.stepOnce = false

	g.scheduler.Update(g.world)
	g.fireBullets()
	g.expireBullets()
	return nil
}

func (g *Game) fireBullets() {
	ecs.ForEach3(g.world, component.InputComponent.Kind(), component.ControllerComponent.Kind(), component.TransformComponent.Kind(), func(shooter ecs.Entity, in *component.Input, ctrl *component.Controller, tr *component.Transform) {
		if !in.FirePressed {
			return
		}
		origin := tr.Position.Add(cp.Vector{X: ctrl.Facing * bulletOffset})
		b, err := g.spawnBullet(shooter, origin, ctrl.Facing)
		if err != nil {
			log.Printf("sandbox: fire: %v", err)
			return
		}
		g.bullets[b] = bulletLifetime
	})
}

func (g *Game) spawnBullet(shooter ecs.Entity, at cp.Vector, facing float64) (ecs.Entity, error) {
	b, err := entity.BuildEntity(g.world, "bullet")
	if err != nil {
		return 0, err
	}
	if err := entity.SetEntityTransform(g.world, b, at.X, at.Y, 0); err != nil {
		return 0, err
	}
	if err := ecs.Add(g.world, b, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(shooter)}); err != nil {
		return 0, err
	}
	if rb, ok := ecs.Get(g.world, b, component.RigidBodyComponent.Kind()); ok {
		rb.Velocity.X = math.Copysign(rb.Velocity.X, facing)
	}
	if c, ok := ecs.Get(g.world, b, component.ColliderComponent.Kind()); ok {
		c.OnCollisionStart = func(self, _ uint64) {
			g.expired = append(g.expired, ecs.Entity(self))
		}
	}
	return b, nil
}

// expireBullets destroys bullets that hit something or outlived their
// lifetime. Destruction waits until the tick's callbacks have all fired.
func (g *Game) expireBullets() {
	for b, left := range g.bullets {
		if left <= 1 || !ecs.IsAlive(g.world, b) {
			g.expired = append(g.expired, b)
			continue
		}
		g.bullets[b] = left - 1
	}
	for _, b := range g.expired {
		ecs.DestroyEntity(g.world, b)
		delete(g.bullets, b)
	}
	g.expired = g.expired[:0]
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	debug.DrawColliders(g.world, screen, g.view)

	status := fmt.Sprintf("FPS: %.1f  TPS: %.1f  Tick: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.scheduler.Ticks())
	if g.paused {
		status += "  [paused]"
	}
	if g.physics.Collision.ForceX {
		status += "  [force x]"
	}
	ebitenutil.DebugPrint(screen, status)
	if g.debug {
		debug.DrawStats(screen, g.physics.Stats, 8, 20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
