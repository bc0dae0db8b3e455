// Package harness models the configuration the external browser-test
// harness consumes. The gate never manages the harness's parallelism;
// it resolves this config, writes the JSON file the harness reads,
// and runs the harness as one ordinary gate step.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/epmk/buildgate/internal/types"
)

// Profile names one browser/device combination the harness runs.
type Profile struct {
	Name    string `yaml:"name" json:"name"`
	Browser string `yaml:"browser" json:"browser"`
	Device  string `yaml:"device,omitempty" json:"device,omitempty"`
}

// WebServer is the harness's server-bootstrap directive.
type WebServer struct {
	Command       string `yaml:"command" json:"command"`
	URL           string `yaml:"url" json:"url"`
	Timeout       string `yaml:"timeout" json:"-"`
	ReuseExisting bool   `yaml:"reuse_existing" json:"reuseExistingServer"`
}

// Config describes one harness invocation.
type Config struct {
	Enabled       bool      `yaml:"enabled"`
	Command       string    `yaml:"command"`
	TestDir       string    `yaml:"test_dir"`
	FullyParallel bool      `yaml:"fully_parallel"`
	Workers       int       `yaml:"workers"`
	Retries       int       `yaml:"retries"`
	Profiles      []Profile `yaml:"profiles"`
	Reporters     []string  `yaml:"reporters"`
	WebServer     WebServer `yaml:"web_server"`
	TestTimeout   string    `yaml:"test_timeout"`
	ExpectTimeout string    `yaml:"expect_timeout"`
}

// Default is the out-of-the-box harness configuration, disabled until
// a project opts in.
func Default() Config {
	return Config{
		Command:       "npx playwright test",
		TestDir:       "e2e",
		FullyParallel: true,
		Profiles: []Profile{
			{Name: "chromium", Browser: "chromium"},
			{Name: "firefox", Browser: "firefox"},
			{Name: "webkit", Browser: "webkit"},
		},
		Reporters: []string{"list", "json"},
		WebServer: WebServer{
			Command:       "cargo run",
			URL:           "http://127.0.0.1:8080",
			Timeout:       "120s",
			ReuseExisting: true,
		},
		TestTimeout:   "30s",
		ExpectTimeout: "5s",
	}
}

// InCI reports whether we are running under a CI execution context.
func InCI() bool {
	return os.Getenv("CI") != ""
}

// Resolve applies the CI policy: a single worker for determinism and
// positive retries under CI; full parallelism and zero retries
// locally.
func (c Config) Resolve(ci bool) Config {
	if ci {
		c.FullyParallel = false
		c.Workers = 1
		if c.Retries == 0 {
			c.Retries = 2
		}
	} else {
		c.Retries = 0
	}
	return c
}

// Step is the gate step that invokes the harness.
func (c Config) Step() types.Step {
	return types.Step{
		Name:    "e2e",
		Kind:    types.KindEndToEnd,
		Command: c.Command,
	}
}

// fileConfig is the JSON shape the harness reads, with timeouts in
// milliseconds.
type fileConfig struct {
	TestDir         string    `json:"testDir"`
	FullyParallel   bool      `json:"fullyParallel"`
	Workers         int       `json:"workers,omitempty"`
	Retries         int       `json:"retries"`
	Projects        []Profile `json:"projects"`
	Reporters       []string  `json:"reporters"`
	WebServer       webServer `json:"webServer"`
	TimeoutMS       int64     `json:"timeout"`
	ExpectTimeoutMS int64     `json:"expectTimeout"`
}

type webServer struct {
	WebServer
	TimeoutMS int64 `json:"timeout"`
}

// WriteFile emits the harness config JSON at path.
func (c Config) WriteFile(path string) error {
	testMS, err := durationMS(c.TestTimeout, 30*time.Second)
	if err != nil {
		return fmt.Errorf("test_timeout: %w", err)
	}
	expectMS, err := durationMS(c.ExpectTimeout, 5*time.Second)
	if err != nil {
		return fmt.Errorf("expect_timeout: %w", err)
	}
	serverMS, err := durationMS(c.WebServer.Timeout, 2*time.Minute)
	if err != nil {
		return fmt.Errorf("web_server.timeout: %w", err)
	}

	fc := fileConfig{
		TestDir:         c.TestDir,
		FullyParallel:   c.FullyParallel,
		Workers:         c.Workers,
		Retries:         c.Retries,
		Projects:        c.Profiles,
		Reporters:       c.Reporters,
		WebServer:       webServer{WebServer: c.WebServer, TimeoutMS: serverMS},
		TimeoutMS:       testMS,
		ExpectTimeoutMS: expectMS,
	}
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling harness config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func durationMS(s string, def time.Duration) (int64, error) {
	if s == "" {
		return def.Milliseconds(), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d.Milliseconds(), nil
}
