// Package main runs the interactive party-versus-monster battle game.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/battle"
	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/frontend/console"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/command"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
	"github.com/cory-johannsen/skirmish/internal/game/ruleset"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
	"github.com/cory-johannsen/skirmish/internal/storage/sqlite"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	seed := flag.Uint("seed", 0, "RNG seed; 0 uses battle.seed from config, or a fresh seed")
	fresh := flag.Bool("new", false, "ignore any save and start a new run")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	items, err := item.LoadRegistry(cfg.Content.ItemsDir)
	if err != nil {
		logger.Fatal("loading items", zap.Error(err))
	}
	monsters, err := npc.LoadRegistry(cfg.Content.MonstersDir)
	if err != nil {
		logger.Fatal("loading monsters", zap.Error(err))
	}
	classes, err := ruleset.LoadRegistry(cfg.Content.ClassesDir)
	if err != nil {
		logger.Fatal("loading classes", zap.Error(err))
	}
	if err := errors.Join(monsters.CheckItems(items), classes.CheckItems(items)); err != nil {
		logger.Fatal("content references unknown items", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("items", items.Len()),
		zap.Int("monsters", len(monsters.IDs())),
		zap.Int("classes", len(classes.IDs())),
	)

	store, closeStore, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("opening roster store", zap.Error(err))
	}
	defer closeStore()

	battleSeed := uint32(*seed)
	if battleSeed == 0 {
		battleSeed = cfg.Battle.Seed
	}
	if battleSeed == 0 {
		battleSeed = dice.NewSeed()
	}
	logger = observability.ForRun(logger, battleSeed)
	rng := dice.NewSeededRNG(battleSeed, logger)

	con := console.New(os.Stdout, command.DefaultRegistry(), logger)
	svc := battle.NewService(battle.Deps{
		Rules:    cfg.Rules.Combat(),
		Rewards:  cfg.Rewards.Reward(),
		RNG:      rng,
		Items:    items,
		Monsters: monsters,
		Classes:  classes,
		Store:    store,
		Logger:   logger,
	}, battle.Options{
		Seed:           battleSeed,
		FoeCount:       cfg.Battle.FoeCount,
		FoeLevelSpread: cfg.Battle.FoeLevelSpread,
		Pacer:          combat.NewDelayPacer(cfg.Battle.AIDelay()),
		OnStep:         con.Show,
	})
	con.SetGame(svc)

	saved, err := svc.Restore(ctx)
	if err != nil {
		logger.Fatal("restoring roster", zap.Error(err))
	}
	if !saved || *fresh {
		if _, err := svc.NewRun(ctx, cfg.Battle.StartClass); err != nil {
			logger.Fatal("starting new run", zap.Error(err))
		}
	}

	logger.Info("ready",
		zap.Bool("restored", saved && !*fresh),
		zap.Duration("startup", time.Since(start)),
	)
	fmt.Printf("Seed %d. ", battleSeed)

	if err := con.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Error("console", zap.Error(err))
	}
}

// openStore opens the roster store named by cfg.Driver and returns a close
// function for it.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (battle.RosterStore, func(), error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database unreachable: %w", err)
		}
		if err := postgres.Migrate(cfg); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database connected", zap.String("driver", cfg.Driver), zap.String("host", cfg.Host))
		return postgres.NewRosterRepository(pool.DB()), pool.Close, nil
	case "sqlite":
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.SQLitePath))
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
