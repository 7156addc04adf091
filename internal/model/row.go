package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Address table column names. The address column is matched
// case-insensitively on load; output columns are created with these exact
// headers when missing.
const (
	ColumnAddress = "address"

	ColumnStateHouseDistrict  = "State House District"
	ColumnStateHouseRep       = "State House Rep."
	ColumnStateSenateDistrict = "State Senate District"
	ColumnStateSenateRep      = "State Senate Rep."
	ColumnUSHouseDistrict     = "US House District"
	ColumnUSHouseRep          = "US House Rep."
)

// ErrMissingAddress marks a table row whose address cell is blank.
var ErrMissingAddress = eris.New("model: row has no address")

// OutputColumns lists the district cells enrichment writes, in table order.
func OutputColumns() []string {
	return []string{
		ColumnStateHouseDistrict,
		ColumnStateHouseRep,
		ColumnStateSenateDistrict,
		ColumnStateSenateRep,
		ColumnUSHouseDistrict,
		ColumnUSHouseRep,
	}
}

// Columns returns the district and representative column names for j.
func (j Jurisdiction) Columns() (district, rep string) {
	switch j {
	case JurisdictionStateSenate:
		return ColumnStateSenateDistrict, ColumnStateSenateRep
	case JurisdictionUSHouse:
		return ColumnUSHouseDistrict, ColumnUSHouseRep
	default:
		return ColumnStateHouseDistrict, ColumnStateHouseRep
	}
}

// Row is one line of the address table: the input address plus the six
// district cells written back by enrichment.
type Row struct {
	Address             string `json:"address"`
	StateHouseDistrict  string `json:"state_house_district,omitempty"`
	StateHouseRep       string `json:"state_house_rep,omitempty"`
	StateSenateDistrict string `json:"state_senate_district,omitempty"`
	StateSenateRep      string `json:"state_senate_rep,omitempty"`
	USHouseDistrict     string `json:"us_house_district,omitempty"`
	USHouseRep          string `json:"us_house_rep,omitempty"`
}

// NewRow validates and constructs a row from an address cell.
func NewRow(address string) (Row, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Row{}, ErrMissingAddress
	}
	return Row{Address: address}, nil
}

// Done reports whether the row has already been enriched. The state house
// representative cell is the completion sentinel: rows where it is blank
// are selected for processing.
func (r Row) Done() bool {
	return strings.TrimSpace(r.StateHouseRep) != ""
}

// WithDistricts returns a copy of the row with the resolved seats filled
// in. Jurisdictions absent from districts leave their cells blank.
func (r Row) WithDistricts(districts Districts, chambers ChamberSet) Row {
	for _, j := range Jurisdictions() {
		seat, ok := districts[j]
		if !ok {
			continue
		}
		label := seat.Label(chambers[j].Term)
		switch j {
		case JurisdictionStateHouse:
			r.StateHouseDistrict = label
			r.StateHouseRep = seat.Official
		case JurisdictionStateSenate:
			r.StateSenateDistrict = label
			r.StateSenateRep = seat.Official
		case JurisdictionUSHouse:
			r.USHouseDistrict = label
			r.USHouseRep = seat.Official
		}
	}
	return r
}
