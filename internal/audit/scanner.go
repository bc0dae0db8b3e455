package audit

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks a source tree and matches every line of every eligible
// file against its rule set. The walk always completes: a match never
// stops it, an unreadable file is skipped, and only an unreadable root
// is an error.
type Scanner struct {
	Root            string
	Rules           []Rule
	IncludePatterns []string // filename globs, e.g. "*.rs"
	ExcludePatterns []string // path fragments, e.g. "target/"
	MaxFileSize     int64    // bytes; 0 means no cap
}

// Scan returns every finding in the tree, in walk order. An empty
// result is valid and unremarkable.
func (s *Scanner) Scan() ([]Finding, error) {
	info, err := os.Stat(s.Root)
	if err != nil {
		return nil, fmt.Errorf("audit root %s: %w", s.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("audit root %s is not a directory", s.Root)
	}

	var findings []Finding
	err = filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable paths
		}
		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			rel = path
		}
		if info.IsDir() {
			if path != s.Root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if s.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.excluded(rel) || !s.included(info.Name()) {
			return nil
		}
		if s.MaxFileSize > 0 && info.Size() > s.MaxFileSize {
			return nil
		}
		findings = append(findings, s.scanFile(path, rel)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// scanFile records every rule match in one file. Unreadable files
// yield nothing.
func (s *Scanner) scanFile(path, rel string) []Finding {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var findings []Finding
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		for _, r := range s.Rules {
			if strings.Contains(text, r.Pattern) {
				findings = append(findings, Finding{
					Rule:     r.ID,
					Severity: r.Severity,
					File:     rel,
					Line:     line,
				})
			}
		}
	}
	return findings
}

func (s *Scanner) excluded(rel string) bool {
	for _, pat := range s.ExcludePatterns {
		if strings.HasPrefix(rel, pat) || strings.Contains(rel, "/"+pat) {
			return true
		}
	}
	return false
}

func (s *Scanner) included(name string) bool {
	if len(s.IncludePatterns) == 0 {
		return true
	}
	for _, pat := range s.IncludePatterns {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}
