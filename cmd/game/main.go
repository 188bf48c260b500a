package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/Garsondee/coordinate-borders/internal/border"
	"github.com/Garsondee/coordinate-borders/internal/config"
	"github.com/Garsondee/coordinate-borders/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	border.SetLogger(logger)

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.Size()
	ebiten.SetWindowTitle("Coordinate Borders")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
