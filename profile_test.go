package preipo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultProfiles(t *testing.T) {
	p := DefaultProfiles()
	for _, id := range []string{"SpaceX", "Stripe", "OpenAI", "ByteDance", "Databricks", "Canva", "Shein", "Epic Games", "Revolut", "Fanatics", "Anthropic", "Reddit"} {
		prof, ok := p.Get(id)
		if !ok {
			t.Errorf("missing default profile for %q", id)
			continue
		}
		if prof.Name != id {
			t.Errorf("Get(%q).Name = %q", id, prof.Name)
		}
		if len(prof.Summary) == 0 || prof.Founded == 0 {
			t.Errorf("Get(%q) = %+v, want a summary and a founding year", id, prof)
		}
	}
	if _, ok := p.Get("Unknown Corp"); ok {
		t.Error("Get(Unknown Corp) should be false")
	}
}

func TestDecodeProfiles(t *testing.T) {
	const input = `
Acme:
  name: Acme Corporation
  founded: 1949
  summary:
    - Anvils.
`
	p, err := DecodeProfiles(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	prof, ok := p.Get("Acme")
	if !ok || prof.Name != "Acme Corporation" || prof.Founded != 1949 || len(prof.Summary) != 1 {
		t.Errorf("Get(Acme) = %+v, %v", prof, ok)
	}

	empty, err := DecodeProfiles(strings.NewReader(""))
	if err != nil || len(empty) != 0 {
		t.Errorf("DecodeProfiles(empty) = %v, %v", empty, err)
	}

	for _, bad := range []string{"Acme: [1, 2", "Acme:\n  founded: -3\n", "- a\n- b\n"} {
		if _, err := DecodeProfiles(strings.NewReader(bad)); err == nil {
			t.Errorf("DecodeProfiles(%q) expected an error", bad)
		}
	}
}

func TestLoadProfiles(t *testing.T) {
	p, err := LoadProfiles("")
	if err != nil || len(p) != len(DefaultProfiles()) {
		t.Errorf("LoadProfiles(\"\") = %d profiles, %v", len(p), err)
	}

	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte("Acme:\n  summary: [Anvils.]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProfiles(path)
	if err != nil || len(p) != 1 {
		t.Errorf("LoadProfiles(%q) = %v, %v", path, p, err)
	}

	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadProfiles() should fail on a missing file")
	}
}
