package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tilerts/sim/internal/command"
	"github.com/tilerts/sim/internal/config"
	"github.com/tilerts/sim/internal/core/event"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/scripting"
	"github.com/tilerts/sim/internal/system"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/sim.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          rtssim  headless simulator       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(defaultConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Load static data
	printSection("Data")
	grid, err := data.LoadGridMap(cfg.Data.MapPath)
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	printOK(fmt.Sprintf("map %s (%dx%d)", cfg.Data.MapPath, grid.Width(), grid.Height()))

	catalog, err := data.LoadCatalog(cfg.Data.UnitList, cfg.Data.BuildingList)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	printStat("unit types", len(catalog.Units()))
	printStat("building types", len(catalog.Buildings()))

	var spawns []data.SpawnEntry
	if cfg.Data.SpawnList != "" {
		if spawns, err = data.LoadSpawnList(cfg.Data.SpawnList); err != nil {
			return fmt.Errorf("spawn list: %w", err)
		}
	}
	printStat("spawn entries", len(spawns))
	fmt.Println()

	// 4. Rules: Lua when enabled, fixed durations otherwise
	printSection("Rules")
	queueMaxLen := cfg.Sim.TrainQueueMaxLen
	var rules world.Rules = world.FixedRules{Ticks: cfg.Sim.TrainTicks()}
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		rules = scripting.Rules{
			Engine:         engine,
			TicksPerSecond: cfg.Sim.TicksPerSecond,
			Fallback:       cfg.Sim.TrainTicks(),
		}
		if !engine.HasFunction("train_duration") {
			log.Warn("lua train_duration not defined, every unit trains in the fixed time",
				zap.Int("ticks", cfg.Sim.TrainTicks()))
		}
		queueMaxLen = engine.QueueCapacity(queueMaxLen)
		printOK(fmt.Sprintf("lua scripts loaded from %s", cfg.Scripting.Dir))
	} else {
		printOK(fmt.Sprintf("fixed training time %d ticks", cfg.Sim.TrainTicks()))
	}
	fmt.Println()

	// 5. Build the world and level
	ws := world.NewState(grid, catalog, world.Options{
		TicksPerSecond:   cfg.Sim.TicksPerSecond,
		TrainQueueMaxLen: queueMaxLen,
		Rules:            rules,
	})
	subscribeLoggers(ws.Bus(), log)

	ctl := command.NewController(ws, log.Named("command"))
	units, buildings := spawnLevel(ws, ctl, spawns, log)
	printSection("Level")
	printStat("units", units)
	printStat("buildings", buildings)
	fmt.Println()

	sim := system.NewSimulation(ws, system.Clock{TicksPerSecond: cfg.Sim.TicksPerSecond}, log.Named("sim"))

	// 6. Start tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	tickRate := cfg.Sim.TickDuration()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	printSection("Running")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", tickRate))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			sim.Tick()
			n := sim.TickCount()
			if cfg.Sim.ReportEvery > 0 && n%cfg.Sim.ReportEvery == 0 {
				reportStats(ws, n, log)
			}
			if cfg.Sim.RunTicks > 0 && n >= cfg.Sim.RunTicks {
				reportStats(ws, n, log)
				log.Info("tick limit reached", zap.Uint64("ticks", n))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("received shutdown signal", zap.String("signal", sig.String()))
			reportStats(ws, sim.TickCount(), log)
			return nil
		}
	}
}

func reportStats(ws *world.State, tick uint64, log *zap.Logger) {
	moving, training := 0, 0
	ws.EachUnit(func(u *world.Unit) {
		if u.MoveQueued() {
			moving++
		}
	})
	ws.EachBuilding(func(b *world.Building) {
		training += len(b.TrainQueue)
	})
	log.Info("stats",
		zap.Uint64("tick", tick),
		zap.Int("units", ws.UnitCount()),
		zap.Int("moving", moving),
		zap.Int("buildings", ws.BuildingCount()),
		zap.Int("training", training))
}

// subscribeLoggers reports world events through the logger.
func subscribeLoggers(bus *event.Bus, log *zap.Logger) {
	evLog := log.Named("event")
	event.Subscribe(bus, func(e event.UnitSpawned) {
		evLog.Debug("unit spawned",
			zap.Uint32("uid", uint32(e.UID)), zap.String("type", e.Type),
			zap.Float64("x", e.Pos.X), zap.Float64("y", e.Pos.Y))
	})
	event.Subscribe(bus, func(e event.BuildingPlaced) {
		evLog.Info("building placed",
			zap.Uint32("uid", uint32(e.UID)), zap.String("type", e.Type),
			zap.Int("tile_x", e.TopLeft.X), zap.Int("tile_y", e.TopLeft.Y))
	})
	event.Subscribe(bus, func(e event.TrainingQueued) {
		evLog.Debug("training queued",
			zap.Uint32("building", uint32(e.Building)), zap.String("unit_type", e.UnitType),
			zap.Int("ticks", e.Ticks), zap.Int("queue_len", e.QueueLen))
	})
	event.Subscribe(bus, func(e event.UnitTrained) {
		evLog.Info("unit trained",
			zap.Uint32("building", uint32(e.Building)), zap.Uint32("uid", uint32(e.Unit)),
			zap.String("unit_type", e.UnitType))
	})
	event.Subscribe(bus, func(e event.CastFailed) {
		evLog.Warn("cast failed",
			zap.Uint32("caster", uint32(e.Caster)), zap.String("ability", e.Ability), zap.Error(e.Err))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
