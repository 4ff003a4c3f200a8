package preipo

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Profile is the descriptive content about an entity, it plays no role in the metrics.
type Profile struct {
	Name    string   `yaml:"name,omitempty"` // display name, the entity id if empty
	Founded int      `yaml:"founded,omitempty"`
	Summary []string `yaml:"summary"`
}

// Profiles maps entity ids to their profile.
type Profiles map[string]Profile

// Get returns the profile of an entity. The profile name defaults to id.
func (p Profiles) Get(id string) (Profile, bool) {
	prof, ok := p[id]
	if prof.Name == "" {
		prof.Name = id
	}
	return prof, ok
}

// DecodeProfiles reads profiles from a YAML document keyed by entity id.
func DecodeProfiles(r io.Reader) (Profiles, error) {
	p := make(Profiles)
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse profiles from YAML: %w", err)
	}
	for id, prof := range p {
		if prof.Founded < 0 {
			return nil, fmt.Errorf("profile %q: invalid founding year %d", id, prof.Founded)
		}
	}
	return p, nil
}

// DefaultProfiles returns the profiles shipped with the package.
func DefaultProfiles() Profiles {
	p, err := DecodeProfiles(bytes.NewReader(defaultProfiles))
	if err != nil {
		panic(err) // the embedded file is part of the source code
	}
	return p
}

// LoadProfiles reads profiles from a YAML file. An empty path means DefaultProfiles.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open profiles file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeProfiles(f)
}
