// Package assets provides embedded default gate definitions.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
)

//go:embed gates/*.yaml
var gatesFS embed.FS

// LoadGate returns the embedded gate YAML by name.
func LoadGate(name string) ([]byte, error) {
	data, err := gatesFS.ReadFile(filepath.Join("gates", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("gate %q not embedded", name)
	}
	return data, nil
}

// GateNames lists the embedded gate names.
func GateNames() ([]string, error) {
	entries, err := fs.ReadDir(gatesFS, "gates")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(".yaml")])
	}
	return names, nil
}
