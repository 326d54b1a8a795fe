package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appName = "wordfix"

// PathResolver locates data and config files relative to the binary, the
// working directory and the per-user config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a resolver for the running executable.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", appName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		return filepath.Join(homeDir, ".config", appName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		return filepath.Join(homeDir, "."+appName)
	}
}

// candidates lists where a relative path is looked up, in order.
func (pr *PathResolver) candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, path))
	}
	out = append(out,
		filepath.Join(pr.executableDir, path),
		filepath.Join(pr.configDir, path),
	)
	return out
}

// ResolveFile returns the first existing location of path. When none exists
// the working-directory candidate is returned so the caller reports a useful
// error.
func (pr *PathResolver) ResolveFile(path string) string {
	cands := pr.candidates(path)
	for _, c := range cands {
		if FileExists(c) {
			log.Debugf("Resolved %s to %s", path, c)
			return c
		}
	}
	return cands[0]
}

// GetConfigPath returns the full path for a config file, falling back to
// writable locations when the config directory cannot be created.
func (pr *PathResolver) GetConfigPath(filename string) string {
	fallbackDirs := []string{
		pr.configDir,
		filepath.Join(pr.homeDir, "."+appName),
		filepath.Join(os.TempDir(), appName),
	}
	for i, dir := range fallbackDirs {
		if CheckDirStatus(dir).Writable {
			path := filepath.Join(dir, filename)
			if i > 0 {
				log.Warnf("Using fallback config location: %s", path)
			}
			return path
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}
