// Package gate defines the ordered check sequence and the engine that
// drives it.
package gate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/epmk/buildgate/internal/assets"
	"github.com/epmk/buildgate/internal/types"
)

// Gate is a named, ordered sequence of steps. The sequence is fixed
// once a run starts.
type Gate struct {
	Name  string       `yaml:"name"`
	Steps []types.Step `yaml:"steps"`
}

// Parse decodes a gate from YAML bytes.
func Parse(data []byte) (*Gate, error) {
	var g Gate
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing gate: %w", err)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ParseFile reads and parses a gate YAML file.
func ParseFile(path string) (*Gate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gate file %s: %w", path, err)
	}
	return Parse(data)
}

func (g *Gate) validate() error {
	if g.Name == "" {
		return fmt.Errorf("gate must have a name")
	}
	if len(g.Steps) == 0 {
		return fmt.Errorf("gate %q has no steps", g.Name)
	}
	seen := map[string]bool{}
	for _, s := range g.Steps {
		if s.Name == "" {
			return fmt.Errorf("gate %q: step with no name", g.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("gate %q: duplicate step %q", g.Name, s.Name)
		}
		seen[s.Name] = true
		if s.Command == "" && !(s.Kind == types.KindProbe && s.Tool != "") {
			return fmt.Errorf("gate %q: step %q has no command", g.Name, s.Name)
		}
	}
	return nil
}

// Load resolves a gate by name: project .buildgate/gates/ override,
// then user ~/.buildgate/gates/, then the embedded default.
func Load(name string) (*Gate, error) {
	projectPath := filepath.Join(".buildgate", "gates", name+".yaml")
	if _, err := os.Stat(projectPath); err == nil {
		return ParseFile(projectPath)
	}

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".buildgate", "gates", name+".yaml")
		if _, err := os.Stat(userPath); err == nil {
			return ParseFile(userPath)
		}
	}

	data, err := assets.LoadGate(name)
	if err != nil {
		return nil, fmt.Errorf("gate %q not found", name)
	}
	return Parse(data)
}
