package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/geom"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "snowy-forest", cfg.Scene)
	assert.Equal(t, "easy", cfg.Difficulty)
	assert.Equal(t, "dog", cfg.Animals)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.False(t, cfg.Mute)
	assert.Nil(t, cfg.Rand())

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, catalog.SceneSnowyForest, s.Scene)
	assert.Equal(t, catalog.DifficultyEasy, s.Difficulty)
	assert.Equal(t, []catalog.Kind{catalog.KindDog}, s.Pool)
	assert.Equal(t, geom.Size{Width: 1024, Height: 768}, s.Viewport)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("PAWSEEK_SCENE", "farm")
	t.Setenv("PAWSEEK_DIFFICULTY", "hard")
	t.Setenv("PAWSEEK_ANIMALS", "cat, pig")
	t.Setenv("PAWSEEK_SEED", "17")
	t.Setenv("PAWSEEK_MUTE", "true")
	t.Setenv("PAWSEEK_WIDTH", "not-a-number")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Mute)
	assert.Equal(t, 1024, cfg.Width, "invalid numbers fall back to the default")

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, catalog.SceneFarm, s.Scene)
	assert.Equal(t, catalog.DifficultyHard, s.Difficulty)
	assert.Equal(t, []catalog.Kind{catalog.KindCat, catalog.KindPig}, s.Pool)

	// Same seed, same sequence.
	assert.Equal(t, cfg.Rand().Uint64(), cfg.Rand().Uint64())
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAWSEEK_DIFFICULTY=medium\n"), 0o600))
	t.Setenv("PAWSEEK_DIFFICULTY", "")
	os.Unsetenv("PAWSEEK_DIFFICULTY")

	cfg := Load()
	assert.Equal(t, "medium", cfg.Difficulty)
}

func TestSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"unknown scene", Config{Scene: "moon", Difficulty: "easy", Animals: "dog"}, catalog.ErrUnknownScene},
		{"unknown difficulty", Config{Scene: "farm", Difficulty: "extreme", Animals: "dog"}, catalog.ErrUnknownDifficulty},
		{"unknown animal", Config{Scene: "farm", Difficulty: "easy", Animals: "dog,dragon"}, catalog.ErrUnknownKind},
		{"empty pool", Config{Scene: "farm", Difficulty: "easy", Animals: " , "}, catalog.ErrEmptyPool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Settings()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
