package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	LogFile   string

	Scene      string
	Difficulty string
	Animals    string
	AssetDir   string
	Seed       uint64
	Width      int
	Height     int
	Mute       bool
}

// Settings is the validated game selection a session is built from.
type Settings struct {
	Scene      catalog.Scene
	Difficulty catalog.Difficulty
	Pool       []catalog.Kind
	Viewport   geom.Size
}

// Load merges an optional .env file into the environment and reads the
// configuration from it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	return &Config{
		Port:       getEnvInt("PORT", 8080),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		LogFile:    getEnv("PAWSEEK_LOG_FILE", "pawseek.log"),
		Scene:      getEnv("PAWSEEK_SCENE", catalog.SceneSnowyForest.String()),
		Difficulty: getEnv("PAWSEEK_DIFFICULTY", catalog.DifficultyEasy.String()),
		Animals:    getEnv("PAWSEEK_ANIMALS", catalog.KindDog.String()),
		AssetDir:   getEnv("PAWSEEK_ASSET_DIR", "assets"),
		Seed:       getEnvUint("PAWSEEK_SEED", 0),
		Width:      getEnvInt("PAWSEEK_WIDTH", 1024),
		Height:     getEnvInt("PAWSEEK_HEIGHT", 768),
		Mute:       getEnvBool("PAWSEEK_MUTE", false),
	}
}

// Settings resolves the configured names through the catalog.
func (c *Config) Settings() (Settings, error) {
	scene, err := catalog.ParseScene(c.Scene)
	if err != nil {
		return Settings{}, fmt.Errorf("PAWSEEK_SCENE: %w", err)
	}
	difficulty, err := catalog.ParseDifficulty(c.Difficulty)
	if err != nil {
		return Settings{}, fmt.Errorf("PAWSEEK_DIFFICULTY: %w", err)
	}
	pool, err := catalog.ParseKinds(c.Animals)
	if err != nil {
		return Settings{}, fmt.Errorf("PAWSEEK_ANIMALS: %w", err)
	}
	if err := catalog.ValidateSelection(scene, difficulty, pool); err != nil {
		return Settings{}, err
	}
	return Settings{
		Scene:      scene,
		Difficulty: difficulty,
		Pool:       pool,
		Viewport:   geom.Size{Width: float64(c.Width), Height: float64(c.Height)},
	}, nil
}

// Rand returns a deterministic source when a seed is configured, nil
// otherwise so the session seeds itself.
func (c *Config) Rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
