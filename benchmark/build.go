package benchmark

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// BuildBinaries compiles the two strategy commands into binDir using the
// local Go toolchain, mirroring how the harness owns compilation of the
// programs it measures.
//
// Arguments:
// - ctx: Bounds the compile time.
// - moduleDir: The module root containing cmd/loopfilter and cmd/poolfilter.
// - binDir: Destination directory for the binaries.
//
// Returns:
// - string: Path to the loop binary.
// - string: Path to the pool binary.
// - error: The first compile failure.
func BuildBinaries(ctx context.Context, moduleDir, binDir string) (string, string, error) {
	loop := filepath.Join(binDir, "loopfilter")
	pool := filepath.Join(binDir, "poolfilter")

	targets := []struct {
		out string
		pkg string
	}{
		{out: loop, pkg: "./cmd/loopfilter"},
		{out: pool, pkg: "./cmd/poolfilter"},
	}
	for _, target := range targets {
		cmd := exec.CommandContext(ctx, "go", "build", "-o", target.out, target.pkg)
		cmd.Dir = moduleDir
		if output, err := cmd.CombinedOutput(); err != nil {
			return "", "", errors.Wrapf(err, "go build %s: %s", target.pkg, output)
		}
	}
	return loop, pool, nil
}
