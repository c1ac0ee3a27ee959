package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/PizzaLvr49/moonlit/client"
	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/PizzaLvr49/moonlit/client/console"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	uc, err := client.LoadUserConfig("config.toml")
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}

	r, input := newRenderer(), &camera.Events{}
	conf.Renderer = r
	conf.Camera.Input = input
	c := conf.New()

	ctx, cancel := context.WithCancel(context.Background())
	go console.New(c, log).Run(ctx)

	ebiten.SetWindowTitle("Moonlit")
	ebiten.SetWindowSize(screenWidth*4, screenHeight*4)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g := &game{c: c, input: input, r: r, manualTick: conf.TickInterval <= 0}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run game: " + err.Error())
	}
	cancel()
	if err := c.Close(); err != nil {
		os.Exit(1)
	}
}
