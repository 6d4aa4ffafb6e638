package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `===========================================
   STARTING BATCH PROCESSOR (4 Workers)
   [pool scheduler]
===========================================
Processing: a.jpg ... Done.
Processing: b.jpg ... Failed!
Processing: c.jpg ... Done.

===========================================
   COMPLETED!
   Images Processed: 2
   Images Failed:    1
   Workers Used:     4
   TOTAL TIME:       3.141593 seconds
===========================================
`

func TestParseRunOutput(t *testing.T) {
	count, seconds, err := ParseRunOutput(sampleOutput)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 3.141593, seconds, 1e-9)
}

func TestParseRunOutputMissingMarkers(t *testing.T) {
	_, _, err := ParseRunOutput("no markers here\n")
	assert.Error(t, err)

	_, _, err = ParseRunOutput("Images Processed: 5\n")
	assert.Error(t, err, "time marker missing")

	_, _, err = ParseRunOutput("TOTAL TIME: 1.5 seconds\n")
	assert.Error(t, err, "count marker missing")
}

func TestParseRunOutputMalformedValues(t *testing.T) {
	_, _, err := ParseRunOutput("Images Processed: many\nTOTAL TIME: 1.0 seconds\n")
	assert.Error(t, err)

	_, _, err = ParseRunOutput("Images Processed: 2\nTOTAL TIME: fast\n")
	assert.Error(t, err)
}

func TestParseRunOutputWithoutSecondsSuffix(t *testing.T) {
	count, seconds, err := ParseRunOutput("Images Processed: 7\nTOTAL TIME: 0.25\n")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.InDelta(t, 0.25, seconds, 1e-9)
}
