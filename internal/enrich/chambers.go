package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/civic-tools/district-cli/internal/model"
)

// LoadChambers reads chamber overrides from a YAML file and merges them
// over the defaults. Only the marker and term of a known jurisdiction
// may be overridden; the three-jurisdiction column layout is fixed.
//
//	chambers:
//	  state_house:
//	    marker: sldl
//	    term: Assembly
func LoadChambers(path string) (model.ChamberSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: read chambers %s", path)
	}

	var wrapper struct {
		Chambers map[string]model.Chamber `yaml:"chambers"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "enrich: parse chambers")
	}

	chambers := model.DefaultChambers()
	for key, override := range wrapper.Chambers {
		j := model.Jurisdiction(key)
		base, ok := chambers[j]
		if !ok {
			return nil, eris.Errorf("enrich: unknown jurisdiction %q", key)
		}
		if override.Marker != "" {
			base.Marker = override.Marker
		}
		if override.Term != "" {
			base.Term = override.Term
		}
		chambers[j] = base
	}
	return chambers, nil
}
