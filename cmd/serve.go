package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/repository"
	"github.com/inkwellhq/inkwell/routes"
	"github.com/inkwellhq/inkwell/store"
	"github.com/inkwellhq/inkwell/utils"
)

// databaseWait bounds how long serve retries an unreachable database.
const databaseWait = 30 * time.Second

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the blog",
		Description: `Starts the HTTP server. The post store is created empty or
		seeded, lives as long as the process and is discarded at exit unless
		the mysql driver is selected.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "JSON configuration file",
				EnvVars: []string{"INKWELL_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP port, overrides app.Port",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: `post store driver: "memory" or "mysql"`,
			},
			&cli.DurationFlag{
				Name:  "latency",
				Usage: "simulated round trip per repository call, 0 disables",
			},
			&cli.StringFlag{
				Name:  "seed-file",
				Usage: "TOML file with the posts to start with",
			},
			&cli.BoolFlag{
				Name:  "no-seed",
				Usage: "start with an empty store",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadFrom(ctx.String("config"))
			if err != nil {
				return err
			}
			cfg = applyServeFlags(ctx, cfg)
			config.Set(cfg)

			if err := utils.InitLogger(cfg); err != nil {
				return err
			}
			defer func() { _ = utils.Logger.Sync() }()
			defer func() { _ = utils.CloseRedis() }()

			st, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			posts, err := seedPosts(cfg)
			if err != nil {
				return err
			}
			if err := seedIfEmpty(ctx.Context, st, posts); err != nil {
				return err
			}

			repo := repository.New(st,
				repository.WithDelay(newDelay(cfg.LatencyMS)),
				repository.WithLogger(utils.Logger.Named("repository")),
			)
			r := routes.SetupRouter(repo)

			count, err := repo.CountPosts(ctx.Context)
			if err != nil {
				return err
			}
			utils.Logger.Info("starting server",
				zap.String("port", cfg.AppPort),
				zap.Int("posts", count),
				zap.String("store", cfg.StoreDriver),
				zap.Int("latency_ms", cfg.LatencyMS),
			)
			return utils.GraceServer(ctx.Context, ":"+cfg.AppPort, r)
		},
	}
}

// applyServeFlags overrides cfg with the flags given on the command line.
func applyServeFlags(ctx *cli.Context, cfg config.AppConfig) config.AppConfig {
	if ctx.IsSet("port") {
		cfg.AppPort = ctx.String("port")
	}
	if ctx.IsSet("store") {
		cfg.StoreDriver = ctx.String("store")
	}
	if ctx.IsSet("latency") {
		cfg.LatencyMS = int(ctx.Duration("latency") / time.Millisecond)
	}
	if ctx.IsSet("seed-file") {
		cfg.SeedFile = ctx.String("seed-file")
	}
	if ctx.IsSet("no-seed") {
		cfg.NoSeed = ctx.Bool("no-seed")
	}
	return cfg
}

// openStore returns the configured store and a func releasing its resources.
func openStore(cfg config.AppConfig) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case "", "memory":
		return store.NewMemoryStore(), func() {}, nil
	case "mysql":
		db, err := config.OpenDatabase(cfg, databaseWait)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		st, err := store.NewGormStore(db)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		return st, closeDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// seedPosts picks the initial posts: the seed file when set, none when
// seeding is disabled, the built-in samples otherwise.
func seedPosts(cfg config.AppConfig) ([]models.Post, error) {
	switch {
	case cfg.SeedFile != "":
		return loadSeedFile(cfg.SeedFile)
	case cfg.NoSeed:
		return nil, nil
	default:
		return store.DefaultSeed(), nil
	}
}

// seedIfEmpty inserts posts only into an empty store, so a persistent
// backend is seeded once.
func seedIfEmpty(ctx context.Context, st store.Store, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	n, err := st.Len(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Logger.Info("store not empty, skipping seed", zap.Int("posts", n))
		return nil
	}
	if err := store.Seed(ctx, st, posts); err != nil {
		return err
	}
	utils.Logger.Info("store seeded", zap.Int("posts", len(posts)))
	return nil
}

// newDelay maps LatencyMS to a Delay; zero or less disables it.
func newDelay(ms int) repository.Delay {
	if ms <= 0 {
		return repository.NoDelay
	}
	return repository.FixedDelay(time.Duration(ms) * time.Millisecond)
}
