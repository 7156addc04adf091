// Package enrich resolves legislative districts for street addresses and
// drives batch enrichment over an address table.
package enrich

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/pkg/civic"
)

// Extraction failures are typed so callers can tell malformed API data
// apart from transport errors.
var (
	// ErrNoDistrictNumber means a matched division name carries no digits.
	ErrNoDistrictNumber = eris.New("enrich: no district number in division name")
	// ErrNoOffice means a matched division references no valid office.
	ErrNoOffice = eris.New("enrich: division has no office")
	// ErrNoOfficial means an office references no valid official.
	ErrNoOfficial = eris.New("enrich: office has no official")
	// ErrNoParty means the official record has no party affiliation.
	ErrNoParty = eris.New("enrich: official has no party")
)

var digitRe = regexp.MustCompile(`\d+`)

// Extract pulls per-jurisdiction seats out of a representatives response.
//
// Division IDs are matched against each chamber's marker substring
// ("sldl" for state lower houses, "sldu" for upper, "cd:" for
// congressional districts). A matched division resolves through its
// first office to that office's first official. Jurisdictions with no
// matching division are absent from the result; a division whose data
// is malformed fails the whole extraction.
//
// Division IDs are visited in sorted order so repeated lookups resolve
// identically.
func Extract(resp *civic.RepresentativesResponse, chambers model.ChamberSet) (model.Districts, error) {
	ids := make([]string, 0, len(resp.Divisions))
	for id := range resp.Divisions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	districts := make(model.Districts)
	for _, id := range ids {
		division := resp.Divisions[id]
		for _, j := range model.Jurisdictions() {
			marker := chambers[j].Marker
			if marker == "" || !strings.Contains(id, marker) {
				continue
			}
			seat, err := extractSeat(resp, id, division)
			if err != nil {
				return nil, err
			}
			districts[j] = *seat
		}
	}
	return districts, nil
}

func extractSeat(resp *civic.RepresentativesResponse, id string, division civic.Division) (*model.Seat, error) {
	digits := digitRe.FindString(division.Name)
	if digits == "" {
		return nil, eris.Wrapf(ErrNoDistrictNumber, "division %s (%q)", id, division.Name)
	}
	number, err := strconv.Atoi(digits)
	if err != nil {
		return nil, eris.Wrapf(ErrNoDistrictNumber, "division %s (%q)", id, division.Name)
	}

	if len(division.OfficeIndices) == 0 {
		return nil, eris.Wrapf(ErrNoOffice, "division %s", id)
	}
	oi := division.OfficeIndices[0]
	if oi < 0 || oi >= len(resp.Offices) {
		return nil, eris.Wrapf(ErrNoOffice, "division %s", id)
	}
	office := resp.Offices[oi]

	if len(office.OfficialIndices) == 0 {
		return nil, eris.Wrapf(ErrNoOfficial, "division %s", id)
	}
	fi := office.OfficialIndices[0]
	if fi < 0 || fi >= len(resp.Officials) {
		return nil, eris.Wrapf(ErrNoOfficial, "division %s", id)
	}
	official := resp.Officials[fi]

	if official.Party == "" {
		return nil, eris.Wrapf(ErrNoParty, "official %q in division %s", official.Name, id)
	}

	return &model.Seat{
		District: number,
		Official: official.Name,
		Party:    string([]rune(official.Party)[0]),
	}, nil
}
