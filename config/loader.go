package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/injector/logger"
)

// FileSystem abstracts the file operations of the loader for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem implements FileSystem on the real file system.
type OSFileSystem struct{}

// Exists reports whether path can be stat'ed.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv loads a .env file into the process environment without
// overriding variables that are already set.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds loader dependencies and file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// LoaderOption configures LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the file system used to find and load files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix binds only environment variables starting with prefix and
// an underscore. The prefix is stripped before mapping to config keys.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// Files holds the config and env files chosen for a service.
type Files struct {
	ConfigFile string
	EnvFile    string
}

// FileFinder locates config.yml and .env files for a service.
type FileFinder struct {
	FileSystem FileSystem
}

// Find returns explicit paths when given, otherwise the first match in the
// standard search locations. Empty fields mean nothing was found.
func (f *FileFinder) Find(serviceName string, lc LoaderConfig) Files {
	files := Files{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = f.first(configSearchPaths(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = f.first(envSearchPaths(serviceName))
	}
	return files
}

func (f *FileFinder) first(paths []string) string {
	for _, p := range paths {
		if f.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoadConfig loads configuration for serviceName into cfg. The config file
// is read first, then the .env file and process environment override it.
// A missing file is not an error; a file that exists but cannot be parsed is.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	finder := &FileFinder{FileSystem: lc.FileSystem}
	files := finder.Find(serviceName, lc)
	log := logger.WithComponent("config")

	v := viper.New()
	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", files.ConfigFile, err)
		}
		log.Debug("config file loaded", logger.Fields("file", files.ConfigFile))
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load env file", logger.Fields("file", files.EnvFile, logger.FieldError, err.Error()))
		} else {
			log.Debug("env file loaded", logger.Fields("file", files.EnvFile))
		}
	}

	bindEnv(v, os.Environ(), lc.EnvPrefix)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// shortName returns the part of a dashed service name after the last dash.
func shortName(serviceName string) string {
	if i := strings.LastIndex(serviceName, "-"); i != -1 {
		return serviceName[i+1:]
	}
	return serviceName
}

func configSearchPaths(serviceName string) []string {
	names := []string{serviceName}
	if short := shortName(serviceName); short != serviceName {
		names = append(names, short)
	}

	var paths []string
	for _, up := range []string{".", "..", "../.."} {
		for _, name := range names {
			paths = append(paths, path.Join(up, "cmd", name, "config.yml"))
		}
	}
	return append(paths, "config/config.yml", "../config/config.yml", "config.yml")
}

func envSearchPaths(serviceName string) []string {
	var paths []string
	for _, file := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{
			"cmd/" + serviceName,
			"cmd/" + shortName(serviceName),
			"config",
			".",
			"..",
		} {
			paths = append(paths, path.Join(dir, file))
		}
	}
	return removeDuplicates(paths)
}

// bindEnv sets every KEY=value pair on v under each nested key it may
// address. With a prefix, only PREFIX_KEY variables are considered.
func bindEnv(v *viper.Viper, environ []string, prefix string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		if prefix != "" {
			rest, found := strings.CutPrefix(key, prefix+"_")
			if !found || rest == "" {
				continue
			}
			key = rest
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants maps an environment key to the config keys it may address:
//
//	RESOLVER_INCLUDE_EMBEDDED -> resolver_include_embedded, resolver.include.embedded,
//	                             resolver.include_embedded
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.Join(parts, ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
