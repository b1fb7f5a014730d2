package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/marksort/internal/dagger"
)

// Build returns a directory holding the marksort binary for linux on the
// engine's native architecture. mattn/go-sqlite3 needs cgo, so the binary is
// built inside goContainer instead of being cross compiled.
func (m *Marksort) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	build := m.goContainer().
		WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", "/out/marksort", "./cli/marksort"})

	return dag.Directory().WithDirectory("linux", build.Directory("/out"))
}

// BuildRelease compiles a versioned release binary with embedded version info
func (m *Marksort) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	buildtime := time.Now().UTC().Format(time.RFC3339)

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X 'github.com/papercomputeco/marksort/pkg/utils.Version=%s'", version),
		fmt.Sprintf("-X 'github.com/papercomputeco/marksort/pkg/utils.Sha=%s'", commit),
		fmt.Sprintf("-X 'github.com/papercomputeco/marksort/pkg/utils.Buildtime=%s'", buildtime),
	}

	return m.Build(ctx, strings.Join(ldflags, " "))
}
