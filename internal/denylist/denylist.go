// internal/denylist/denylist.go
// Package denylist loads the versioned metric/method exclusion file.
//
// Exclusions are data, not code: each entry stays in the file with an
// optional disabled flag and reason so every inclusion/exclusion remains
// auditable. The deny-lists are applied exactly once, at the tidy stage.
package denylist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one name in the deny-list file. A disabled entry is kept for the
// record but no longer filters anything.
type Entry struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled,omitempty"`
	Reason   string `yaml:"reason,omitempty"`
}

// File models the on-disk deny-list document.
type File struct {
	Version int     `yaml:"version"`
	Metrics []Entry `yaml:"metrics"`
	Methods []Entry `yaml:"methods"`
}

// DenyList is a set of denied names. The zero value denies nothing.
type DenyList struct {
	names map[string]bool
}

// New builds a DenyList from literal names. Used by tests and by callers
// that assemble lists programmatically.
func New(names ...string) DenyList {
	if len(names) == 0 {
		return DenyList{}
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return DenyList{names: set}
}

// Denies reports whether name is excluded.
func (d DenyList) Denies(name string) bool {
	return d.names[name]
}

// Empty reports whether the list filters nothing.
func (d DenyList) Empty() bool {
	return len(d.names) == 0
}

// Names returns the denied names, for logging.
func (d DenyList) Names() []string {
	out := make([]string, 0, len(d.names))
	for name := range d.names {
		out = append(out, name)
	}
	return out
}

// Load reads the deny-list file and returns the active metric and method
// lists. An empty path yields empty lists (a no-op filter). A configured but
// unreadable path is an error: exclusions must never be silently dropped.
func Load(path string) (metrics DenyList, methods DenyList, err error) {
	if path == "" {
		return DenyList{}, DenyList{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DenyList{}, DenyList{}, fmt.Errorf("could not read deny-list file %q: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return DenyList{}, DenyList{}, fmt.Errorf("could not parse deny-list file %q: %w", path, err)
	}

	return fromEntries(file.Metrics), fromEntries(file.Methods), nil
}

func fromEntries(entries []Entry) DenyList {
	active := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Disabled || entry.Name == "" {
			continue
		}
		active = append(active, entry.Name)
	}
	return New(active...)
}
