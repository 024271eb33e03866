package lst

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping normalizes known symbol renames and marks node kinds to ignore
// during comparison. It is loaded once per comparison run and read-only
// after that. The comparator never guesses renames: unmapped drift is always
// reported.
type Mapping struct {
	// Renames maps origin-side identifiers to their ported-side names.
	Renames map[string]string `json:"renames" yaml:"renames"`

	// IgnoreKinds lists node kinds dropped before multiset construction.
	IgnoreKinds []Kind `json:"ignore_kinds" yaml:"ignore_kinds"`
}

func (m *Mapping) ignoresKind(k Kind) bool {
	for _, ig := range m.IgnoreKinds {
		if ig == k {
			return true
		}
	}
	return false
}

// LoadMapping reads a mapping file. YAML and JSON are both accepted (JSON
// parses as YAML). An empty path yields an empty mapping.
func LoadMapping(path string) (*Mapping, error) {
	if path == "" {
		return &Mapping{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return &m, nil
}
