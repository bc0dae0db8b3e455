// Package types holds shared data structures used across packages.
package types

// StepKind classifies what a gate step checks. The kind drives the
// failure label a step gets when its tool reports failure.
type StepKind string

const (
	KindProbe           StepKind = "probe"
	KindFormat          StepKind = "format"
	KindLint            StepKind = "lint"
	KindUnitTest        StepKind = "unit-test"
	KindIntegrationTest StepKind = "integration-test"
	KindEndToEnd        StepKind = "e2e"
	KindCustom          StepKind = "custom"
)

// Step is a single check in a gate.
type Step struct {
	Name     string   `yaml:"name"`
	Kind     StepKind `yaml:"kind,omitempty"`
	Tool     string   `yaml:"tool,omitempty"` // binary probed when kind is "probe"
	Command  string   `yaml:"command"`
	Optional bool     `yaml:"optional,omitempty"`
}

// Required reports whether a failure of this step must stop the gate.
func (s Step) Required() bool {
	return !s.Optional
}
