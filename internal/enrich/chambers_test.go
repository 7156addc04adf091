package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-tools/district-cli/internal/model"
)

func writeChambersFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chambers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadChambers_EmptyFileKeepsDefaults(t *testing.T) {
	path := writeChambersFile(t, "")

	chambers, err := LoadChambers(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChambers(), chambers)
}

func TestLoadChambers_PartialOverride(t *testing.T) {
	path := writeChambersFile(t, `
chambers:
  state_house:
    term: Assembly
`)

	chambers, err := LoadChambers(path)
	require.NoError(t, err)

	house := chambers[model.JurisdictionStateHouse]
	assert.Equal(t, "Assembly", house.Term)
	assert.Equal(t, "sldl", house.Marker, "marker keeps its default when not overridden")

	assert.Equal(t, model.DefaultChambers()[model.JurisdictionStateSenate], chambers[model.JurisdictionStateSenate])
	assert.Equal(t, model.DefaultChambers()[model.JurisdictionUSHouse], chambers[model.JurisdictionUSHouse])
}

func TestLoadChambers_FullOverride(t *testing.T) {
	path := writeChambersFile(t, `
chambers:
  state_senate:
    marker: council
    term: Council
`)

	chambers, err := LoadChambers(path)
	require.NoError(t, err)

	senate := chambers[model.JurisdictionStateSenate]
	assert.Equal(t, "council", senate.Marker)
	assert.Equal(t, "Council", senate.Term)
}

func TestLoadChambers_UnknownJurisdiction(t *testing.T) {
	path := writeChambersFile(t, `
chambers:
  parish_council:
    term: Council
`)

	_, err := LoadChambers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown jurisdiction "parish_council"`)
}

func TestLoadChambers_MissingFile(t *testing.T) {
	_, err := LoadChambers(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read chambers")
}

func TestLoadChambers_MalformedYAML(t *testing.T) {
	path := writeChambersFile(t, "chambers: [not a map")

	_, err := LoadChambers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse chambers")
}
