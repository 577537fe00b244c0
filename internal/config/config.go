package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	// MaxCols 为 0 表示不限宽（soft-wrap 模式）。
	MaxCols int `toml:"max_cols"`
	// LiveRows 是 live overlay 的行数，0 表示使用默认值。
	LiveRows int `toml:"live_rows"`
	// SoftWrap 为 true 时强制不限宽，覆盖 MaxCols。
	SoftWrap bool `toml:"soft_wrap"`
	// FileOpener 是引用链接的 URI 前缀（如 vscode://file），为空不改写。
	FileOpener string `toml:"file_opener"`
	// Workdir 用于解析相对引用路径。
	Workdir string `toml:"workdir"`
	LogPath string `toml:"log_path"`
	Source  string `toml:"-"`
}

func Default() Config {
	return Config{}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ripple", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("RIPPLE_FILE_OPENER")); env != "" {
		cfg.FileOpener = env
	}
	if env := strings.TrimSpace(os.Getenv("RIPPLE_WORKDIR")); env != "" {
		cfg.Workdir = env
	}
	return cfg
}

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "max_cols":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.MaxCols = n
			}
		case "live_rows":
			if n, err := strconv.Atoi(val); err == nil {
				cfg.LiveRows = n
			}
		case "soft_wrap":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.SoftWrap = b
			}
		case "file_opener":
			cfg.FileOpener = val
		case "workdir":
			cfg.Workdir = val
		case "log_path":
			cfg.LogPath = val
		}
	}
	return cfg
}
