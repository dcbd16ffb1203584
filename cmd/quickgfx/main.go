package main

import (
	"flag"
	"log"
	"os"

	"chosenoffset.com/quickgfx/internal/audio"
	"chosenoffset.com/quickgfx/internal/bundle"
	"chosenoffset.com/quickgfx/internal/config"
	"chosenoffset.com/quickgfx/internal/font"
	"chosenoffset.com/quickgfx/internal/game"
	"chosenoffset.com/quickgfx/internal/gfx"
	"chosenoffset.com/quickgfx/internal/input"
	"chosenoffset.com/quickgfx/internal/logging"
	"chosenoffset.com/quickgfx/internal/placeholders"
	ebitenrender "chosenoffset.com/quickgfx/internal/render/ebiten"
	"chosenoffset.com/quickgfx/internal/viewport"
)

func main() {
	configPath := flag.String("config", "quickgfx.json", "path to the JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logging.SetLogger(logger)

	assets, err := bundle.Open(cfg.Font.Bundle)
	if err != nil {
		log.Fatalf("Failed to open bundle (run genplaceholders to create one): %v", err)
	}
	defer assets.Close()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()
	loader := gfx.NewLoader(renderer)

	fnt, err := font.Load(assets, loader, cfg.Font.Dir, cfg.Font.Options())
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	defer fnt.Dispose()

	tile, err := loader.LoadEntry(assets, placeholders.CheckerTile)
	if err != nil {
		log.Fatalf("Failed to load tile: %v", err)
	}
	orb, err := loader.LoadSheet(assets, placeholders.OrbSheet)
	if err != nil {
		log.Fatalf("Failed to load sprite sheet: %v", err)
	}

	mixer := audio.NewMixer(cfg.Audio.SampleRate)
	beep, err := mixer.Load(assets, placeholders.BeepSound)
	if err != nil {
		log.Printf("Warning: Failed to load sound: %v", err)
	}

	mapper := viewport.NewMapper(cfg.Window.Width, cfg.Window.Height)
	mapper.SetVirtualSize(cfg.Virtual.Width, cfg.Virtual.Height)
	ctx := gfx.NewContext(mapper)
	poller := input.NewPoller(inputMgr, mapper)

	manager := game.NewManager(ctx, poller, game.Assets{
		Font:     fnt,
		Tile:     tile,
		Orb:      orb,
		OrbFlash: placeholders.OrbFlashFrame,
		Beep:     beep,
	})
	defer manager.Close()

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetFullscreen(cfg.Window.Fullscreen)

	log.Printf("Starting quickgfx at %dx%d (virtual %dx%d)", cfg.Window.Width, cfg.Window.Height, cfg.Virtual.Width, cfg.Virtual.Height)
	if err := engine.RunGame(manager); err != nil {
		log.Fatal(err)
	}
}
