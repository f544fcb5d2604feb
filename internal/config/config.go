package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultBackend  = BackendJSON
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	appDirName     = ".jot"
	configFileName = "config.toml"
)

// Config holds resolved settings for one invocation.
type Config struct {
	// File is the storage location. Empty means the default under ~/.jot.
	File      string `toml:"file"`
	Backend   string `toml:"backend"`
	Theme     string `toml:"theme"`
	Group     bool   `toml:"group"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Flag-only settings.
	Interactive bool   `toml:"-"`
	ConfigFile  string `toml:"-"`
}

// flagValues mirrors Config for pflag bindings; only flags the user set are
// applied on top of the other sources.
type flagValues struct {
	file, backend, theme, logLevel, logFormat, configFile string
	group, interactive                                    bool
}

// registerFlags defines jot's flags on fs.
func registerFlags(fs *pflag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVarP(&v.file, "file", "f", "", "todo storage file")
	fs.StringVar(&v.backend, "backend", "", "storage backend: json or sqlite")
	fs.StringVar(&v.theme, "theme", "", "colour theme: classic, neon or mono")
	fs.StringVar(&v.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&v.logFormat, "log-format", "", "log format: text, json or logfmt")
	fs.StringVar(&v.configFile, "config", "", "config file (default ~/.jot/config.toml)")
	fs.BoolVarP(&v.group, "group", "g", false, "group listings by pending/done")
	fs.BoolVarP(&v.interactive, "interactive", "i", false, "browse todos interactively")
	return v
}

// Load parses args with fs and layers every source into a Config. It
// returns the positional arguments left after flag parsing.
func Load(fs *pflag.FlagSet, args []string) (*Config, []string, error) {
	flags := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := Defaults()

	configFile := flags.configFile
	if configFile == "" {
		configFile = os.Getenv("JOT_CONFIG")
	}
	if configFile != "" {
		configFile = expandPath(configFile)
		if err := loadConfigFile(cfg, configFile); err != nil {
			return nil, nil, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
	} else if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
		configFile = userFile
	}
	cfg.ConfigFile = configFile

	loadFromEnv(cfg)
	applyFlags(cfg, fs, flags)

	if err := finalizeConfig(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

// Defaults returns a Config with built-in defaults applied.
func Defaults() *Config {
	return &Config{
		Backend:  DefaultBackend,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// loadConfigFile decodes TOML into cfg, rejecting keys jot does not know.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("JOT_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("JOT_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("JOT_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("JOT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("JOT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func applyFlags(cfg *Config, fs *pflag.FlagSet, v *flagValues) {
	if fs.Changed("file") {
		cfg.File = v.file
	}
	if fs.Changed("backend") {
		cfg.Backend = v.backend
	}
	if fs.Changed("theme") {
		cfg.Theme = v.theme
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = v.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = v.logFormat
	}
	if fs.Changed("group") {
		cfg.Group = v.group
	}
	cfg.Interactive = v.interactive
}

func finalizeConfig(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	switch cfg.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q (want json or sqlite)", cfg.Backend)
	}
	switch cfg.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q (want classic, neon or mono)", cfg.Theme)
	}
	switch cfg.LogFormat {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q (want text, json or logfmt)", cfg.LogFormat)
	}

	if cfg.File == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		name := "todos.json"
		if cfg.Backend == BackendSQLite {
			name = "todos.db"
		}
		cfg.File = filepath.Join(dir, name)
	}
	cfg.File = expandPath(cfg.File)
	if abs, err := filepath.Abs(cfg.File); err == nil {
		cfg.File = abs
	}
	return nil
}

// DataDir is where jot keeps its files by default.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, appDirName), nil
}

func findUserConfigFile() string {
	if dir, err := DataDir(); err == nil {
		p := filepath.Join(dir, configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(cfgDir, "jot", configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// expandPath expands environment variables and a leading ~.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	return expanded
}
