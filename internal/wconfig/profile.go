// Package wconfig loads named connection profiles from YAML via
// gopkg.in/yaml.v3 (spec.md §4.D EXPANSION). Profile loading is
// additive: a caller that builds a connection purely in code never
// needs this package.
package wconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is one named connection profile.
type Profile struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	Scheme           string        `yaml:"scheme"` // "http" or "https"
	Namespace        string        `yaml:"namespace"`
	Username         string        `yaml:"username"`
	CredentialRef    string        `yaml:"credential_ref"` // name of an external secret, never a literal password
	CABundlePath     string        `yaml:"ca_bundle_path"`
	InsecureSkipTLS  bool          `yaml:"insecure_skip_tls_verify"`
	OperationTimeout time.Duration `yaml:"operation_timeout"`
}

// File is the top-level shape of a profile file: a map of profile name
// to Profile, so one file can hold several named targets.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and parses a profile file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wconfig: reading %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("wconfig: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Profile looks up a named profile, defaulting OperationTimeout to 30s
// (spec.md §5 "each operation accepts an operation timeout (default
// 30s)") and Scheme to "https" when unset.
func (f *File) Profile(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("wconfig: no profile named %q", name)
	}
	if p.OperationTimeout == 0 {
		p.OperationTimeout = 30 * time.Second
	}
	if p.Scheme == "" {
		p.Scheme = "https"
	}
	return p, nil
}
