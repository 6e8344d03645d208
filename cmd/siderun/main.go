package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/siderun/internal/assets"
	"chosenoffset.com/siderun/internal/config"
	"chosenoffset.com/siderun/internal/game"
	"chosenoffset.com/siderun/internal/levels"
	"chosenoffset.com/siderun/internal/logger"
	"chosenoffset.com/siderun/internal/netconn"
	ebitenrender "chosenoffset.com/siderun/internal/render/ebiten"
	"chosenoffset.com/siderun/internal/scene"
	"chosenoffset.com/siderun/internal/ui/menu"
)

func main() {
	configPath := flag.String("config", "config.json", "Config file; missing means defaults")
	connect := flag.String("connect", "", "Server address (host:port or ws://...); overrides the config")
	levelsDir := flag.String("levels", "", "Level directory; overrides the config")
	assetsDir := flag.String("assets", "", "Asset directory; overrides the config")
	levelFile := flag.String("level", "", "Start this level file directly, skipping the menu")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	debugRays := flag.Bool("debug-rays", false, "Draw every visibility ray")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *connect != "" {
		cfg.Network.Address = *connect
	}
	if *levelsDir != "" {
		cfg.Levels.Dir = *levelsDir
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *debugRays {
		cfg.Visibility.DebugRays = true
	}

	if err := logger.Setup(cfg.Log.Level, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.For("main")

	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	textures := assets.Load(cfg.Assets.Dir, loader, renderer)
	defer textures.Dispose()

	deps := menu.Deps{
		Config:   cfg,
		Renderer: renderer,
		Textures: textures,
		Session:  game.NewSession(nil),
	}
	if cfg.Network.Address != "" {
		if conn := dial(cfg); conn != nil {
			defer conn.Close()
			deps.Session = game.NewSession(conn)
		}
	}

	var first scene.Scene = menu.New(deps)
	if *levelFile != "" {
		lvl, err := levels.Load(*levelFile)
		if err != nil {
			log.WithError(err).Fatal("Failed to load level.")
		}
		first = game.NewPlay(game.Deps{
			Config:   deps.Config,
			Level:    lvl,
			Renderer: deps.Renderer,
			Textures: deps.Textures,
			Session:  deps.Session,
			Back:     func() scene.Scene { return menu.New(deps) },
		})
	}

	manager := scene.NewManager(first, inputMgr, cfg.Window.Width, cfg.Window.Height, cfg.Window.TPS)

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetTPS(cfg.Window.TPS)

	log.Info("Starting game...")
	if err := engine.RunGame(manager); err != nil {
		log.WithError(err).Fatal("Game exited with an error.")
	}
}

// dial connects to the configured server. A failure is logged and the
// game runs offline.
func dial(cfg *config.Config) *netconn.Conn {
	log := logger.For("main").WithField("address", cfg.Network.Address)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout())
	defer cancel()

	conn, err := netconn.Dial(ctx, cfg.Network.Address, netconn.Options{
		WriteTimeout: cfg.WriteTimeout(),
		Buffer:       cfg.Network.EventBuffer,
	})
	if err != nil {
		log.WithError(err).Warn("Could not connect, playing offline.")
		return nil
	}
	log.WithField("token", conn.Token()).Info("Connected.")
	return conn
}
