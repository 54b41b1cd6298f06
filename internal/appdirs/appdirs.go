package appdirs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "assist"

// ASSIST_HOME pins both config and state under one directory, which is handy
// for tests and portable installs.
const homeOverrideEnv = "ASSIST_HOME"

type dirKind struct {
	label      string
	windowsEnv string
	windowsDir []string
	xdgEnv     string
	unixDir    []string
}

var (
	configKind = dirKind{label: "config", windowsEnv: "APPDATA", windowsDir: []string{"AppData", "Roaming"}, xdgEnv: "XDG_CONFIG_HOME", unixDir: []string{".config"}}
	stateKind  = dirKind{label: "state", windowsEnv: "LOCALAPPDATA", windowsDir: []string{"AppData", "Local"}, xdgEnv: "XDG_STATE_HOME", unixDir: []string{".local", "state"}}
)

// baseDir returns the per-user root for kind, honoring the platform's
// environment conventions. macOS keeps config and state together.
func baseDir(kind dirKind) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory for %s: %w", kind.label, err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv(kind.windowsEnv); dir != "" {
			return dir, nil
		}
		return filepath.Join(append([]string{home}, kind.windowsDir...)...), nil
	default:
		if dir := os.Getenv(kind.xdgEnv); dir != "" {
			return dir, nil
		}
		return filepath.Join(append([]string{home}, kind.unixDir...)...), nil
	}
}

func ConfigDir() (string, error) {
	if override := os.Getenv(homeOverrideEnv); override != "" {
		return filepath.Join(override, "config"), nil
	}
	base, err := baseDir(configKind)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

func StateDir() (string, error) {
	if override := os.Getenv(homeOverrideEnv); override != "" {
		return filepath.Join(override, "state"), nil
	}
	base, err := baseDir(stateKind)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName, "state"), nil
}

func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func StateFilePath(name string) (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func EnsureConfigDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return dir, ensurePrivateDir(dir, "config")
}

func EnsureStateDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return dir, ensurePrivateDir(dir, "state")
}

func ensurePrivateDir(dir string, label string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create %s dir: %w", label, err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return fmt.Errorf("could not secure %s dir permissions: %w", label, err)
	}
	return nil
}
