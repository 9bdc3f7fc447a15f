package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/prefabs"
)

// ScriptLoader returns the source of a filter script by name.
type ScriptLoader func(name string) ([]byte, error)

// CollisionScripts compiles collider filter scripts once per path and runs
// them per contact. A script sees two maps, `self` and `other`, and decides
// the contact by assigning the global `allow`.
//
//	allow = other.vel_y >= 0 && other.bottom <= self.top + 4
type CollisionScripts struct {
	load     ScriptLoader
	compiled map[string]*tengo.Compiled
	failed   map[string]error
}

// NewCollisionScripts uses load to read sources; nil reads prefabs/scripts.
func NewCollisionScripts(load ScriptLoader) *CollisionScripts {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &CollisionScripts{
		load:     load,
		compiled: map[string]*tengo.Compiled{},
		failed:   map[string]error{},
	}
}

// Invalidate drops cached compilations so edited scripts are reloaded.
func (s *CollisionScripts) Invalidate() {
	if s == nil {
		return
	}
	clear(s.compiled)
	clear(s.failed)
}

// Allow runs the script at path for the contact between self and other. A
// script that cannot be loaded, fails at runtime or never sets `allow`
// lets the contact through.
func (s *CollisionScripts) Allow(w *ecs.World, path string, self, other ecs.Entity, debug bool) bool {
	if s == nil || strings.TrimSpace(path) == "" {
		return true
	}
	compiled, err := s.get(path)
	if err != nil {
		if debug {
			log.Printf("collision: entity=%s script %q: %v", self, path, err)
		}
		return true
	}

	if err := compiled.Set("self", scriptBody(w, self)); err != nil {
		return true
	}
	if err := compiled.Set("other", scriptBody(w, other)); err != nil {
		return true
	}
	if err := compiled.Set("allow", true); err != nil {
		return true
	}
	if err := compiled.Run(); err != nil {
		if debug {
			log.Printf("collision: entity=%s script %q run error: %v", self, path, err)
		}
		return true
	}
	return compiled.Get("allow").Bool()
}

func (s *CollisionScripts) get(path string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[path]; ok {
		return c, nil
	}
	if err, ok := s.failed[path]; ok {
		return nil, err
	}

	src, err := s.load(path)
	if err != nil {
		s.failed[path] = err
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("self", map[string]any{})
	_ = script.Add("other", map[string]any{})
	_ = script.Add("allow", true)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		err = fmt.Errorf("compile: %w", err)
		s.failed[path] = err
		return nil, err
	}
	s.compiled[path] = compiled
	return compiled, nil
}

// scriptBody describes e to a script. Missing components leave their keys
// at zero.
func scriptBody(w *ecs.World, e ecs.Entity) map[string]any {
	m := map[string]any{
		"entity":   int64(e),
		"x":        0.0,
		"y":        0.0,
		"vel_x":    0.0,
		"vel_y":    0.0,
		"category": int64(0),
		"left":     0.0,
		"top":      0.0,
		"right":    0.0,
		"bottom":   0.0,
	}
	b, ok := bodyOf(w, e)
	if !ok {
		return m
	}
	m["x"] = b.transform.Position.X
	m["y"] = b.transform.Position.Y
	v := b.velocity()
	m["vel_x"] = v.X
	m["vel_y"] = v.Y
	m["category"] = int64(b.collider.GetCollisionCategory())
	lo, hi := b.shape().Bounds()
	m["left"] = lo.X
	m["top"] = lo.Y
	m["right"] = hi.X
	m["bottom"] = hi.Y
	return m
}
