// Command simulate runs a level headless and prints collision statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/ecs/system"
	"github.com/milk9111/collide/levels"
	"github.com/milk9111/collide/prefabs"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(out)
	levelName := fs.String("level", "sandbox", "level name in levels/ (basename, .json optional)")
	ticks := fs.Int("ticks", 600, "number of fixed steps to run")
	every := fs.Int("every", 0, "print stats every n ticks; 0 prints only the totals")
	forceX := fs.Bool("force-x", false, "resolve box overlaps on the x axis first")
	debug := fs.Bool("debug", false, "log degenerate contacts and script failures")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ticks < 0 {
		return fmt.Errorf("ticks must not be negative")
	}

	spec, err := prefabs.LoadSandboxSpec()
	if err != nil {
		return err
	}
	lvl, err := levels.LoadLevel(*levelName)
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	if _, err := levels.Spawn(w, lvl); err != nil {
		return err
	}

	physics := system.NewPhysicsSystem()
	physics.Collision.Gravity = cp.Vector{X: spec.GravityX, Y: spec.GravityY}
	physics.Collision.ForceX = *forceX || spec.ForceX
	physics.Collision.Debug = *debug
	scheduler := ecs.NewScheduler(system.NewPatrolSystem(), physics)

	for i := 1; i <= *ticks; i++ {
		scheduler.Update(w)
		if *every > 0 && i%*every == 0 {
			printStats(out, fmt.Sprintf("tick %d", i), physics.Stats)
		}
	}

	printStats(out, "total", physics.Total)
	fmt.Fprintf(out, "bodies resting: %d\n", restingBodies(w))
	return nil
}

func printStats(out io.Writer, label string, s system.Stats) {
	fmt.Fprintf(out, "%s: ticks=%d candidates=%d intersections=%d overlaps=%d sweeps=%d sweep_hits=%d separations=%d rejected=%d callbacks=%d\n",
		label, s.Ticks, s.Candidates, s.Intersections, s.Overlaps, s.Sweeps, s.SweepHits, s.Separations, s.Rejected, s.Callbacks)
}

func restingBodies(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.RigidBodyComponent.Kind(), func(_ ecs.Entity, rb *component.RigidBody) {
		if rb.Blocked.Down || rb.Touching.Down {
			n++
		}
	})
	return n
}
