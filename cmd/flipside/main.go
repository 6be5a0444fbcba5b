package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/flipside/pkg/api"
	"github.com/cbodonnell/flipside/pkg/config"
	"github.com/cbodonnell/flipside/pkg/game"
	"github.com/cbodonnell/flipside/pkg/input"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/queue"
	"github.com/cbodonnell/flipside/pkg/repositories"
	"github.com/cbodonnell/flipside/pkg/state"
	"github.com/cbodonnell/flipside/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	saveURL := flag.String("save-url", cfg.SaveURL, "Save storage URL (file://, sqlite://, postgresql://)")
	saveFile := flag.String("save-file", cfg.SaveFile, "Save slot name")
	apiPort := flag.Int("api-port", cfg.DebugAPIPort, "Debug API port, 0 to disable")
	headless := flag.Bool("headless", cfg.Headless, "Run without a window")
	newGame := flag.Bool("new-game", !cfg.Continue, "Start a new game instead of continuing")
	flag.Parse()
	cfg.LogLevel = *logLevel
	cfg.SaveURL = *saveURL
	cfg.SaveFile = *saveFile
	cfg.DebugAPIPort = *apiPort
	cfg.Headless = *headless
	cfg.Continue = !*newGame
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	storageURL, err := cfg.StorageURL()
	if err != nil {
		panic(fmt.Sprintf("Failed to resolve save storage: %v", err))
	}
	repository, err := repositories.Open(ctx, storageURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open save storage: %v", err))
	}
	defer repository.Close(context.Background())
	log.Info("Saving to %s", storageURL)

	levelOrder, err := cfg.LevelOrder()
	if err != nil {
		panic(fmt.Sprintf("Failed to resolve levels: %v", err))
	}

	commands := queue.NewInMemoryQueue(queue.DefaultQueueSize)
	stateManager := state.NewInMemoryStateManager()

	var in *input.Ebiten
	var source player.InputSource
	if !cfg.Headless {
		in = input.NewEbiten()
		source = in
	}

	app, err := game.NewApp(game.NewAppOptions{
		Context:    ctx,
		Repository: repository,
		Slot:       cfg.SaveFile,
		Commands:   commands,
		State:      stateManager,
		Input:      source,
		Levels:     levelOrder,
		Quit:       cancel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}
	defer app.Close()

	if cfg.AutosaveInterval > 0 {
		autosave := workers.NewAutosaveWorker(workers.NewAutosaveWorkerOptions{
			Commands:     commands,
			StateManager: stateManager,
			Interval:     cfg.AutosaveInterval,
		})
		go autosave.Start(ctx)
	}

	if cfg.DebugAPIPort != 0 {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Port:         cfg.DebugAPIPort,
			Repository:   repository,
			StateManager: stateManager,
			Commands:     commands,
		})
		go apiServer.Start()
		defer func() {
			stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			if err := apiServer.Stop(stopCtx); err != nil {
				log.Error("Failed to stop API server: %v", err)
			}
		}()
	}

	if err := app.Start(cfg.Continue); err != nil {
		panic(fmt.Sprintf("Failed to start game: %v", err))
	}

	if cfg.Headless {
		runHeadless(ctx, app, cfg.TickInterval())
		return
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("Flipside")
	ebiten.SetTPS(cfg.TickRate)
	w := newWindow(ctx, app, in, cfg.TickRate)
	if err := ebiten.RunGame(w); err != nil {
		log.Error("Game exited with error: %v", err)
	}
}

// runHeadless drives the game from a ticker until ctx is done.
func runHeadless(ctx context.Context, app *game.App, interval time.Duration) {
	log.Info("Running headless at %s per frame", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping game loop")
			return
		case t := <-ticker.C:
			dt := t.Sub(last).Seconds()
			last = t
			// a stalled process must not turn into one huge physics step
			if max := 4 * interval.Seconds(); dt > max {
				dt = max
			}
			app.Tick(dt)
		}
	}
}
