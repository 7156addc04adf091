package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-tools/district-cli/internal/table"
)

func TestFormatStatus(t *testing.T) {
	var buf bytes.Buffer
	formatStatus(&buf, "data/registered_addresses.csv", 200, 45)

	output := buf.String()
	assert.Contains(t, output, "data/registered_addresses.csv")
	assert.Contains(t, output, "200")
	assert.Contains(t, output, "155")
	assert.Contains(t, output, "45")
}

func TestFormatStatus_AllEnriched(t *testing.T) {
	var buf bytes.Buffer
	formatStatus(&buf, "done.xlsx", 10, 0)

	output := buf.String()
	assert.Contains(t, output, "Enriched:")
	assert.Contains(t, output, "10")
	assert.Contains(t, output, "Pending:")
	assert.Contains(t, output, "0")
}

func TestFillCounts(t *testing.T) {
	content := "address,State House Rep.,State Senate Rep.\n" +
		"1 Main St,Mary Lightbody,Tina Maharath\n" +
		"2 Oak Ave,Mary Lightbody,\n" +
		"3 Elm Rd,,\n"
	path := filepath.Join(t.TempDir(), "addresses.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := table.Load(path, table.Options{})
	require.NoError(t, err)

	fills := fillCounts(tbl)
	require.Len(t, fills, 3)

	assert.Equal(t, "House", fills[0].Term)
	assert.Equal(t, 2, fills[0].Filled)
	assert.Equal(t, 1, fills[0].Missing)

	assert.Equal(t, "Senate", fills[1].Term)
	assert.Equal(t, 1, fills[1].Filled)
	assert.Equal(t, 2, fills[1].Missing)

	// Column absent from the file: every row counts as missing.
	assert.Equal(t, "US House", fills[2].Term)
	assert.Equal(t, 0, fills[2].Filled)
	assert.Equal(t, 3, fills[2].Missing)
}

func TestFormatFillCounts(t *testing.T) {
	var buf bytes.Buffer
	formatFillCounts(&buf, []chamberFill{
		{Term: "House", Filled: 8, Missing: 2},
		{Term: "Senate", Filled: 10, Missing: 0},
	})

	output := buf.String()
	assert.Contains(t, output, "CHAMBER")
	assert.Contains(t, output, "FILLED")
	assert.Contains(t, output, "MISSING")
	assert.Contains(t, output, "House")
	assert.Contains(t, output, "Senate")
	assert.Contains(t, output, "8")
	assert.Contains(t, output, "10")
}
