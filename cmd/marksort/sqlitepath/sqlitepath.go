// Package sqlitepath resolves the usage database used by the sqlite storage
// provider.
package sqlitepath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/papercomputeco/marksort/pkg/dotdir"
)

// DefaultName is the database file created inside the .marksort/ directory.
const DefaultName = "marksort.sqlite"

// ResolveSQLitePath returns override when set. Otherwise it returns the first
// existing candidate database, falling back to DefaultName inside the
// resolved .marksort/ directory, which is created on first use.
func ResolveSQLitePath(override, configDir string) (string, error) {
	if override = strings.TrimSpace(override); override != "" {
		return override, nil
	}

	dir, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return "", err
	}

	for _, candidate := range sqliteCandidates(dir) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return filepath.Join(dir, DefaultName), nil
}

func sqliteCandidates(dir string) []string {
	candidates := []string{
		filepath.Join(dir, DefaultName),
		filepath.Join(dir, "marksort.db"),
	}

	if xdgHome := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdgHome != "" {
		candidates = append(candidates,
			filepath.Join(xdgHome, "marksort", DefaultName),
			filepath.Join(xdgHome, "marksort", "marksort.db"),
		)
	}

	return candidates
}
