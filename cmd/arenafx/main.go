package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arenafx/internal/config"
	"github.com/udisondev/arenafx/internal/data"
	"github.com/udisondev/arenafx/internal/db"
	"github.com/udisondev/arenafx/internal/game/arena"
	"github.com/udisondev/arenafx/internal/game/combatant"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/geo"
	"github.com/udisondev/arenafx/internal/game/skill"
	"github.com/udisondev/arenafx/internal/journal"
	"github.com/udisondev/arenafx/internal/netclient"
)

const ConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ARENAFX_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadArena(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("arenafx starting", "match", cfg.MatchID, "log_level", cfg.LogLevel, "tick", cfg.TickRate)

	if cfg.SkillsFile != "" {
		err = data.LoadSkillsFile(cfg.SkillsFile)
	} else {
		err = data.LoadSkills()
	}
	if err != nil {
		return fmt.Errorf("loading skills: %w", err)
	}

	grid, err := loadGrid(cfg.Map)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}

	client, err := netclient.Dial(ctx, cfg.Server.URL, cfg.Server.DialTimeout, netclient.Options{
		SendQueue:    cfg.Server.SendQueue,
		InboxSize:    cfg.Server.InboxSize,
		WriteTimeout: cfg.Server.WriteTimeout,
		PongWait:     cfg.Server.PongWait,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		net      effect.Network = client
		a        *arena.Arena
		recorder *journal.Recorder
		store    journal.Store
	)

	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		if cfg.Journal.Enabled {
			store = db.NewJournalRepository(database.Pool())
			recorder = journal.NewRecorder(client, cfg.MatchID, func() uint64 { return a.Frame() })
			recorder.SetMaxBuffered(cfg.Journal.MaxBuffered)
			net = recorder
		}
	}

	a = arena.New(net, grid, client)

	player, err := spawnPlayer(cfg.Player, a.Env(), net)
	if err != nil {
		return err
	}
	if err := a.Join(player); err != nil {
		return fmt.Errorf("joining arena: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := client.Run(gctx); err != nil {
			return fmt.Errorf("combat server session: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := a.Run(gctx, cfg.TickRate); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("arena loop: %w", err)
		}
		return nil
	})

	if recorder != nil {
		g.Go(func() error {
			return recorder.Run(gctx, store, cfg.Journal.FlushInterval)
		})
	}

	// stdin reads cannot be interrupted, so the reader stays outside the group.
	go readCommands(os.Stdin, a, player.ID())

	slog.Info("arena ready", "player", player.ID(), "skills", len(player.Skills()))

	if err := g.Wait(); err != nil {
		return fmt.Errorf("arena error: %w", err)
	}

	slog.Info("arenafx stopped", "frames", a.Frame(), "dropped", client.Dropped())
	return nil
}

func loadGrid(m config.MapConfig) (*geo.Grid, error) {
	if m.Path != "" {
		return geo.LoadGrid(m.Path)
	}
	return geo.NewOpenGrid(m.Width, m.Height, m.TileSize)
}

// spawnPlayer builds the local combatant and equips its loadout in slot order.
func spawnPlayer(p config.PlayerConfig, env effect.Env, net effect.Network) (*combatant.Combatant, error) {
	c, err := combatant.New(combatant.Config{
		ID:        effect.EntityID(p.ID),
		Team:      p.Team,
		Class:     effect.ClassPlayer,
		Position:  effect.V(p.SpawnX, p.SpawnY),
		Radius:    p.Radius,
		MaxHealth: p.MaxHealth,
		MaxMana:   p.MaxMana,
	}, net)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}

	for slot, id := range p.Loadout {
		def, ok := data.GetSkillDef(id)
		if !ok {
			return nil, fmt.Errorf("loadout slot %d: unknown skill %d", slot, id)
		}
		s, err := skill.New(def, env)
		if err != nil {
			return nil, fmt.Errorf("loadout slot %d: %w", slot, err)
		}
		if err := c.Equip(slot, s); err != nil {
			return nil, fmt.Errorf("loadout slot %d: %w", slot, err)
		}
	}
	return c, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
