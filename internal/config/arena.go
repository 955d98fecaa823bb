package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalid = errors.New("invalid config")

// Arena holds all configuration for the arena client process.
type Arena struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error
	MatchID  string `yaml:"match_id"`

	// Fixed simulation step (default: 16ms)
	TickRate time.Duration `yaml:"tick_rate"`

	Server   ServerConfig   `yaml:"server"`
	Map      MapConfig      `yaml:"map"`
	Database DatabaseConfig `yaml:"database"`
	Journal  JournalConfig  `yaml:"journal"`
	Player   PlayerConfig   `yaml:"player"`

	// Optional skill catalog replacing the builtin one
	SkillsFile string `yaml:"skills_file"`
}

// ServerConfig is the combat server connection.
type ServerConfig struct {
	URL          string        `yaml:"url"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`   // per-write deadline
	PongWait     time.Duration `yaml:"pong_wait"`       // idle disconnect
	SendQueue    int           `yaml:"send_queue_size"` // outbox capacity, overflow is dropped
	InboxSize    int           `yaml:"inbox_size"`      // inbound events buffered between frames
}

// MapConfig points at a YAML tile map. Without Path an open grid of
// Width x Height tiles is used.
type MapConfig struct {
	Path     string  `yaml:"path"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
}

// JournalConfig controls the combat journal.
type JournalConfig struct {
	Enabled       bool          `yaml:"enabled"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	MaxBuffered   int           `yaml:"max_buffered"` // entries held between flushes
}

// PlayerConfig describes the local combatant.
type PlayerConfig struct {
	ID        uint32  `yaml:"id"`
	Team      int32   `yaml:"team"`
	MaxHealth int32   `yaml:"max_health"`
	MaxMana   int32   `yaml:"max_mana"`
	Radius    float64 `yaml:"radius"`
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnY    float64 `yaml:"spawn_y"`
	Loadout   []int32 `yaml:"loadout"` // skill IDs, slot order, at most 3
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		MatchID:  "local",
		TickRate: 16 * time.Millisecond,
		Server: ServerConfig{
			URL:          "ws://127.0.0.1:8080/combat",
			DialTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PongWait:     60 * time.Second,
			SendQueue:    256,
			InboxSize:    1024,
		},
		Map: MapConfig{
			Width:    40,
			Height:   40,
			TileSize: 1,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "arenafx",
			Password: "arenafx",
			DBName:   "arenafx",
			SSLMode:  "disable",
		},
		Journal: JournalConfig{
			FlushInterval: 2 * time.Second,
			MaxBuffered:   8192,
		},
		Player: PlayerConfig{
			ID:        1,
			Team:      1,
			MaxHealth: 500,
			MaxMana:   200,
			Radius:    0.5,
			SpawnX:    5,
			SpawnY:    5,
			Loadout:   []int32{1, 6, 12},
		},
	}
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the process cannot run with.
func (c Arena) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate %v: %w", c.TickRate, ErrInvalid)
	case c.Server.SendQueue <= 0 || c.Server.InboxSize <= 0:
		return fmt.Errorf("server queues %d/%d: %w", c.Server.SendQueue, c.Server.InboxSize, ErrInvalid)
	case c.Map.Path == "" && (c.Map.Width <= 0 || c.Map.Height <= 0):
		return fmt.Errorf("map %dx%d without path: %w", c.Map.Width, c.Map.Height, ErrInvalid)
	case len(c.Player.Loadout) > 3:
		return fmt.Errorf("loadout has %d skills, max 3: %w", len(c.Player.Loadout), ErrInvalid)
	case c.Journal.Enabled && (c.Journal.FlushInterval <= 0 || c.Journal.MaxBuffered <= 0):
		return fmt.Errorf("journal flush_interval %v max_buffered %d: %w", c.Journal.FlushInterval, c.Journal.MaxBuffered, ErrInvalid)
	case c.Journal.Enabled && !c.Database.Enabled:
		return fmt.Errorf("journal needs database.enabled: %w", ErrInvalid)
	}
	return nil
}
