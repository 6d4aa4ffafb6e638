package benchmark

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pixelbench/go-filters/batch"
)

// ParseRunOutput scrapes the marker lines out of a strategy binary's
// stdout. The markers are substring-matched, so banner indentation and any
// surrounding text are ignored.
//
// Arguments:
// - output: The full captured stdout of one run.
//
// Returns:
// - int: The processed-image count.
// - float64: The elapsed seconds.
// - error: Error when either marker is absent or malformed.
func ParseRunOutput(output string) (int, float64, error) {
	var (
		count        int
		seconds      float64
		haveCount    bool
		haveDuration bool
	)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, batch.MarkerProcessed); idx >= 0 {
			value := strings.TrimSpace(line[idx+len(batch.MarkerProcessed):])
			n, err := strconv.Atoi(value)
			if err != nil {
				return 0, 0, errors.Wrapf(err, "malformed %q line", batch.MarkerProcessed)
			}
			count, haveCount = n, true
		}
		if idx := strings.Index(line, batch.MarkerTotalTime); idx >= 0 {
			value := strings.TrimSpace(line[idx+len(batch.MarkerTotalTime):])
			value = strings.TrimSuffix(value, "seconds")
			s, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return 0, 0, errors.Wrapf(err, "malformed %q line", batch.MarkerTotalTime)
			}
			seconds, haveDuration = s, true
		}
	}

	if !haveCount {
		return 0, 0, errors.Errorf("marker %q not found", batch.MarkerProcessed)
	}
	if !haveDuration {
		return 0, 0, errors.Errorf("marker %q not found", batch.MarkerTotalTime)
	}
	return count, seconds, nil
}
