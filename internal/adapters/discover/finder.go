// Package discover resolves the default input files for a run: the
// lexicographically greatest match of each configured glob, which for the
// date-stamped EaaSI export names is the most recent file.
package discover

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/alex-ip/EaaSI-sessions/internal/ports"
)

const (
	configName      = "config"
	configType      = "toml"
	configDirName   = ".eaasi-sessions"
	configDirEnv    = "EAASI_SESSIONS_CONFIG_DIR"
	searchDirKey    = "discovery.dir"
	sessionsGlobKey = "discovery.sessions_glob"
	usersGlobKey    = "discovery.users_glob"

	defaultSessionsGlob = "sessions_*.csv"
	defaultUsersGlob    = "users_*.json"

	sessionsSegment = "sessions_"
	outputSegment   = "session_count_"
)

type Finder struct {
	dir          string
	sessionsGlob string
	usersGlob    string
}

var _ ports.PathFinder = (*Finder)(nil)

func NewFinder(cfg *viper.Viper) (*Finder, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(searchDirKey, ".")
	cfg.SetDefault(sessionsGlobKey, defaultSessionsGlob)
	cfg.SetDefault(usersGlobKey, defaultUsersGlob)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	finder := &Finder{
		dir:          cfg.GetString(searchDirKey),
		sessionsGlob: cfg.GetString(sessionsGlobKey),
		usersGlob:    cfg.GetString(usersGlobKey),
	}
	if finder.dir == "" {
		return nil, errors.New("discovery dir is empty")
	}
	if finder.sessionsGlob == "" || finder.usersGlob == "" {
		return nil, errors.New("discovery glob is empty")
	}

	return finder, nil
}

func (f *Finder) DefaultSessionsPath(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return f.latestMatch(f.sessionsGlob, "sessions")
}

func (f *Finder) DefaultUsersPath(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return f.latestMatch(f.usersGlob, "users")
}

// DeriveOutputPath rewrites every sessions_ segment of the input path to
// session_count_. A path without the segment has no derivable output and
// must not be silently reused, or the report would replace its own input.
func (f *Finder) DeriveOutputPath(sessionsPath string) (string, error) {
	derived := strings.ReplaceAll(sessionsPath, sessionsSegment, outputSegment)
	if derived == sessionsPath {
		return "", fmt.Errorf("cannot derive output path from %s: no %q segment to rewrite", sessionsPath, sessionsSegment)
	}

	return derived, nil
}

func (f *Finder) latestMatch(glob, kind string) (string, error) {
	pattern := filepath.Join(f.dir, glob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("glob %s pattern %q: %w", kind, pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s files match %s in %s", kind, glob, f.dir)
	}

	return slices.Max(matches), nil
}

func resolveConfigDir() (string, error) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDirName), nil
}
