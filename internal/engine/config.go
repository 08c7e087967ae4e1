package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rpg-core/internal/infrastructure/storage"

	"github.com/caarlos0/env/v11"
)

// Бэкенды сохранений
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SQLiteFile - имя базы внутри SaveDir
const SQLiteFile = "saves.db"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Сцена N получает Seed + N.
	Seed       int64 `env:"RPG_SEED"`
	StartScene int   `env:"RPG_START_SCENE"`
	TickRate   int   `env:"RPG_TICK_RATE"`

	SaveDir          string        `env:"RPG_SAVE_DIR"`
	SaveName         string        `env:"RPG_SAVE_NAME"`
	SaveBackend      string        `env:"RPG_SAVE_BACKEND"`
	AutosaveInterval time.Duration `env:"RPG_AUTOSAVE_INTERVAL"`

	// TemplateDir пустой - встроенный каталог
	TemplateDir    string `env:"RPG_TEMPLATE_DIR"`
	WatchTemplates bool   `env:"RPG_WATCH_TEMPLATES"`

	FadeOutTime  float64 `env:"RPG_FADE_OUT_TIME"`
	FadeWaitTime float64 `env:"RPG_FADE_WAIT_TIME"`
	FadeInTime   float64 `env:"RPG_FADE_IN_TIME"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:             time.Now().UnixNano(),
		StartScene:       0,
		TickRate:         20,
		SaveDir:          "saves",
		SaveName:         "save",
		SaveBackend:      BackendFile,
		AutosaveInterval: 30 * time.Second,
		FadeOutTime:      2,
		FadeWaitTime:     1,
		FadeInTime:       2,
	}
}

// LoadConfig - значения по умолчанию, поверх них переменные окружения RPG_*.
func LoadConfig() (Config, error) {
	cfg := NewConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.New("config: tick rate must be positive")
	}
	if c.SaveName == "" {
		return errors.New("config: save name is required")
	}
	if c.SaveBackend != BackendFile && c.SaveBackend != BackendSQLite {
		return fmt.Errorf("config: unknown save backend %q", c.SaveBackend)
	}
	if c.FadeOutTime < 0 || c.FadeWaitTime < 0 || c.FadeInTime < 0 {
		return errors.New("config: fade times must be non-negative")
	}
	if c.WatchTemplates && c.TemplateDir == "" {
		return errors.New("config: template watching needs a template dir")
	}
	return nil
}

// TickInterval - длительность одного тика.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// SceneSeed - зерно генератора сцены.
func (c Config) SceneSeed(scene int) int64 {
	return c.Seed + int64(scene)
}

// OpenStore открывает хранилище сохранений выбранного бэкенда.
func (c Config) OpenStore() (storage.Store, error) {
	switch c.SaveBackend {
	case BackendSQLite:
		if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
		return storage.OpenSQLite(filepath.Join(c.SaveDir, SQLiteFile))
	case BackendFile:
		return storage.NewFileStore(c.SaveDir)
	default:
		return nil, fmt.Errorf("config: unknown save backend %q", c.SaveBackend)
	}
}
