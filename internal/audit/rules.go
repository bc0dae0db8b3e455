// Package audit implements the compliance scan: a full walk of the
// source tree reporting literal occurrences of configured risk
// patterns. Findings are advisory; they never decide the gate verdict.
package audit

// Severity of a finding. Everything the default rule set produces is
// a Warning; the scale exists so rule sets stay extensible.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARN"
	SeverityError   Severity = "ERROR"
)

// Rule pairs a literal text pattern with an identifier and severity.
// Rules are data: adding one never touches engine or reporter code.
type Rule struct {
	ID       string   `yaml:"id"`
	Pattern  string   `yaml:"pattern"`
	Severity Severity `yaml:"severity"`
}

// DefaultRules covers the two risk markers the audit trail must
// always surface in a Rust tree: unsafe regions and unchecked
// Result unwraps.
func DefaultRules() []Rule {
	return []Rule{
		{ID: "unsafe-block", Pattern: "unsafe", Severity: SeverityWarning},
		{ID: "unchecked-unwrap", Pattern: ".unwrap(", Severity: SeverityWarning},
	}
}

// Finding records one matching line.
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
}

// Group is a rule's findings, in scan order.
type Group struct {
	Rule     Rule
	Findings []Finding
}

// GroupByRule buckets findings per rule, preserving rule declaration
// order. Rules with no findings are omitted.
func GroupByRule(rules []Rule, findings []Finding) []Group {
	byID := make(map[string][]Finding, len(rules))
	for _, f := range findings {
		byID[f.Rule] = append(byID[f.Rule], f)
	}
	var groups []Group
	for _, r := range rules {
		if fs := byID[r.ID]; len(fs) > 0 {
			groups = append(groups, Group{Rule: r, Findings: fs})
		}
	}
	return groups
}
