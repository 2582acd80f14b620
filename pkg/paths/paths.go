// Package paths provides centralized path handling for reactor.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/reactor/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for reactor
	EnvConfigDir = "REACTOR_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for reactor
	EnvDataDir = "REACTOR_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for reactor
	EnvCacheDir = "REACTOR_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files. These define reactor's on-disk layout
// and are not user-configurable; user-facing paths belong in pkg/config.
const (
	// ReactorDirName is the directory name for reactor-specific files
	ReactorDirName = "reactor"

	// ConfigFileName is the name of the main configuration file
	ConfigFileName = "reactor.toml"

	// RulesFileName is the default name of the standalone rules file
	RulesFileName = "rules.toml"

	// SpoolDirName is the subdirectory watched for spooled event files
	SpoolDirName = "spool"

	// ModulesDirName is the subdirectory holding runner module executables
	ModulesDirName = "modules"

	// LogFileName is the name of the log file
	LogFileName = "reactor.log"
)

// Paths provides centralized path management for reactor
type Paths interface {
	ConfigDir() string
	ConfigFilePath() string
	RulesFilePath() string
	DataDir() string
	CacheDir() string
	StateDir() string
	SpoolDir() string
	ModulesDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgCache  string
	xdgState  string
}

// New creates a new Paths instance. XDG directories are used unless the
// REACTOR_*_DIR environment overrides are set.
func New() (Paths, error) {
	p := &paths{}
	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, ReactorDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, ReactorDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, ReactorDirName)
	}

	// XDG state dir, checked manually for older xdg library layouts
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, ReactorDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", ReactorDirName)
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ConfigDir returns the XDG config directory for reactor
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path to the main configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// RulesFilePath returns the default path of the standalone rules file
func (p *paths) RulesFilePath() string {
	return filepath.Join(p.xdgConfig, RulesFileName)
}

// DataDir returns the XDG data directory for reactor
func (p *paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for reactor
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// StateDir returns the XDG state directory for reactor
func (p *paths) StateDir() string {
	return p.xdgState
}

// SpoolDir returns the default spool directory watched for event files
func (p *paths) SpoolDir() string {
	return filepath.Join(p.xdgData, SpoolDirName)
}

// ModulesDir returns the default directory of runner module executables
func (p *paths) ModulesDir() string {
	return filepath.Join(p.xdgData, ModulesDirName)
}

// LogFilePath returns the path to the reactor log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to get home directory")
	}
	return homeDir, nil
}
