package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "show collision stats and log degenerate contacts")
	forceX := flag.Bool("force-x", false, "resolve box overlaps on the x axis first")
	watch := flag.Bool("watch", true, "reload prefabs, scripts and levels when they change on disk")
	levelName := flag.String("level", "sandbox", "level name in levels/ (basename, .json optional)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("collide")
	ebiten.SetTPS(60)

	game, err := NewGame(*levelName, *debug, *forceX, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
