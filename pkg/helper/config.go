package helper

import (
	"os"
	"path/filepath"
)

const systemCfgDir = "/etc/tidio-mcp"

// GetCfgPath returns the path to the configuration file.
//
// Priority:
// 1. If filename is an absolute path, return it directly.
// 2. The first existing candidate from CfgSearchPaths.
// 3. Otherwise, fallback to /etc/tidio-mcp/{filename}
//
// MCP hosts usually spawn servers from an arbitrary working directory, so the
// user config directory is searched as well.
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}
	if filepath.IsAbs(filename) {
		return filename
	}

	for _, candidate := range CfgSearchPaths(filename) {
		if _, err := os.Stat(candidate); err == nil {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs
			}
		}
	}

	return filepath.Join(systemCfgDir, filename)
}

// CfgSearchPaths lists the locations probed for a relative config filename:
// ./{filename}, ./configs/{filename} and {user config dir}/tidio-mcp/{filename}.
func CfgSearchPaths(filename string) []string {
	var paths []string
	if wd, err := os.Getwd(); err == nil && wd != "" {
		paths = append(paths,
			filepath.Join(wd, filename),
			filepath.Join(wd, "configs", filename),
		)
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, "tidio-mcp", filename))
	}
	return paths
}
