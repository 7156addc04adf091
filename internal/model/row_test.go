package model

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow_TrimsAddress(t *testing.T) {
	r, err := NewRow("  1600 Pennsylvania Ave NW, Washington, DC  ")
	require.NoError(t, err)
	assert.Equal(t, "1600 Pennsylvania Ave NW, Washington, DC", r.Address)
}

func TestNewRow_MissingAddress(t *testing.T) {
	for _, addr := range []string{"", "   ", "\t"} {
		_, err := NewRow(addr)
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrMissingAddress))
	}
}

func TestRow_Done(t *testing.T) {
	r := Row{Address: "123 Main St"}
	assert.False(t, r.Done())

	r.StateHouseRep = "Jane Smith"
	assert.True(t, r.Done())

	// A row with only the other cells filled is still pending: the state
	// house representative cell is the completion sentinel.
	partial := Row{Address: "123 Main St", StateSenateRep: "John Doe", USHouseRep: "Ann Lee"}
	assert.False(t, partial.Done())
}

func TestJurisdiction_Columns(t *testing.T) {
	district, rep := JurisdictionStateHouse.Columns()
	assert.Equal(t, ColumnStateHouseDistrict, district)
	assert.Equal(t, ColumnStateHouseRep, rep)

	district, rep = JurisdictionStateSenate.Columns()
	assert.Equal(t, ColumnStateSenateDistrict, district)
	assert.Equal(t, ColumnStateSenateRep, rep)

	district, rep = JurisdictionUSHouse.Columns()
	assert.Equal(t, ColumnUSHouseDistrict, district)
	assert.Equal(t, ColumnUSHouseRep, rep)
}

func TestOutputColumns_MatchesJurisdictionOrder(t *testing.T) {
	cols := OutputColumns()
	require.Len(t, cols, 6)

	var want []string
	for _, j := range Jurisdictions() {
		district, rep := j.Columns()
		want = append(want, district, rep)
	}
	assert.Equal(t, want, cols)
}

func TestRow_WithDistricts(t *testing.T) {
	r, err := NewRow("77 Oak St, Columbus, OH")
	require.NoError(t, err)

	districts := Districts{
		JurisdictionStateHouse: {District: 4, Official: "Jane Smith", Party: "D"},
		JurisdictionUSHouse:    {District: 12, Official: "Ann Lee", Party: "R"},
	}
	got := r.WithDistricts(districts, DefaultChambers())

	assert.Equal(t, "D House District 4", got.StateHouseDistrict)
	assert.Equal(t, "Jane Smith", got.StateHouseRep)
	assert.Equal(t, "R US House District 12", got.USHouseDistrict)
	assert.Equal(t, "Ann Lee", got.USHouseRep)

	// No senate division matched, so its cells stay blank.
	assert.Empty(t, got.StateSenateDistrict)
	assert.Empty(t, got.StateSenateRep)

	// The receiver is untouched.
	assert.Empty(t, r.StateHouseRep)
	assert.True(t, got.Done())
}
