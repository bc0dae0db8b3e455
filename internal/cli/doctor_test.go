package cli

import (
	"reflect"
	"testing"

	"github.com/epmk/buildgate/internal/gate"
	"github.com/epmk/buildgate/internal/types"
)

func TestGateTools(t *testing.T) {
	g := &gate.Gate{
		Name: "test",
		Steps: []types.Step{
			{Name: "toolchain", Kind: types.KindProbe, Tool: "cargo"},
			{Name: "format", Kind: types.KindFormat, Command: "cargo fmt --all -- --check"},
			{Name: "lint", Kind: types.KindLint, Command: "cargo clippy"},
			{Name: "e2e", Kind: types.KindEndToEnd, Command: "npx playwright test"},
		},
	}
	got := gateTools(g)
	want := []string{"cargo", "npx"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("gateTools() = %v, want %v", got, want)
	}
}

func TestFirstWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cargo test --lib", "cargo"},
		{"  npx playwright test", "npx"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstWord(tt.in); got != tt.want {
			t.Errorf("firstWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
