package model

import (
	"fmt"
)

// Jurisdiction identifies one of the legislative bodies whose district
// covers a street address.
type Jurisdiction string

const (
	JurisdictionStateHouse  Jurisdiction = "state_house"
	JurisdictionStateSenate Jurisdiction = "state_senate"
	JurisdictionUSHouse     Jurisdiction = "us_house"
)

// Jurisdictions returns all jurisdictions in canonical column order.
func Jurisdictions() []Jurisdiction {
	return []Jurisdiction{
		JurisdictionStateHouse,
		JurisdictionStateSenate,
		JurisdictionUSHouse,
	}
}

// Chamber describes how one jurisdiction is matched and rendered. Marker is
// the substring identifying the jurisdiction's OCD division IDs ("sldl" is
// the state legislature's lower chamber, "sldu" the upper, "cd:" a
// congressional district). Term is the word used in district labels.
type Chamber struct {
	Marker string `yaml:"marker"`
	Term   string `yaml:"term"`
}

// ChamberSet maps each jurisdiction to its matching and display rules.
type ChamberSet map[Jurisdiction]Chamber

// DefaultChambers returns the chamber set for US state and federal
// legislative districts.
func DefaultChambers() ChamberSet {
	return ChamberSet{
		JurisdictionStateHouse:  {Marker: "sldl", Term: "House"},
		JurisdictionStateSenate: {Marker: "sldu", Term: "Senate"},
		JurisdictionUSHouse:     {Marker: "cd:", Term: "US House"},
	}
}

// Seat is one resolved district assignment: the district number and the
// official currently holding the seat.
type Seat struct {
	District int    `json:"district"`
	Official string `json:"official"`
	Party    string `json:"party"` // single-letter party code
}

// Label renders the district cell value, e.g. "R House District 61".
func (s Seat) Label(term string) string {
	return fmt.Sprintf("%s %s District %d", s.Party, term, s.District)
}

// Districts maps each jurisdiction covering an address to its seat. A
// jurisdiction absent from the map was not present in the lookup response;
// all three are independently optional.
type Districts map[Jurisdiction]Seat
