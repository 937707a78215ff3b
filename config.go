package nightledger

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BigSlikTobi/NightLedger/service/approval"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Runtime modes.
const (
	ModeDemo = "demo"
	ModeLive = "live"
)

// Defaults applied when live mode is selected without explicit settings.
const (
	DefaultLiveAPIBase = "http://127.0.0.1:8001"
	DefaultLiveRunID   = "run_triage_inbox_demo_1"
)

// Config is a serialisable representation of the service configuration. It
// can be populated from JSON, YAML or derived from a page URL. The zero
// value is not useful; start from DefaultConfig or ResolveRuntime.
type Config struct {
	Mode    string `json:"mode" yaml:"mode"`
	RunID   string `json:"runId" yaml:"runId"`
	APIBase string `json:"apiBase" yaml:"apiBase"`

	// DemoLatency delays fixture responses so loading states stay visible.
	DemoLatency time.Duration `json:"demoLatency" yaml:"demoLatency"`
}

// DefaultConfig returns a demo-mode configuration.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeDemo,
		RunID:       approval.DemoRunID,
		DemoLatency: 120 * time.Millisecond,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Mode {
	case ModeDemo, ModeLive:
	default:
		return fmt.Errorf("unsupported mode: %q", c.Mode)
	}
	if c.RunID == "" {
		return fmt.Errorf("runId is required")
	}
	if c.Mode == ModeLive && c.APIBase == "" {
		return fmt.Errorf("apiBase is required in live mode")
	}
	return nil
}

// ResolveRuntime derives the effective configuration from a page URL. The
// runId, mode and apiBase query parameters are honoured; a missing or blank
// runId selects demo mode, and a demo runId combined with live mode falls
// back to the default live run.
func ResolveRuntime(locationHref, injectedAPIBase string) (*Config, error) {
	parsed, err := url.Parse(locationHref)
	if err != nil {
		return nil, err
	}
	query := parsed.Query()
	runID := strings.TrimSpace(query.Get("runId"))
	if runID == "" {
		runID = approval.DemoRunID
	}
	mode := strings.ToLower(strings.TrimSpace(query.Get("mode")))
	if mode != ModeDemo && mode != ModeLive {
		if runID == approval.DemoRunID {
			mode = ModeDemo
		} else {
			mode = ModeLive
		}
	}
	if mode == ModeDemo {
		config := DefaultConfig()
		return config, nil
	}
	if runID == approval.DemoRunID {
		runID = DefaultLiveRunID
	}
	apiBase := normalizeAPIBase(query.Get("apiBase"))
	if apiBase == "" {
		apiBase = normalizeAPIBase(injectedAPIBase)
	}
	if apiBase == "" {
		apiBase = DefaultLiveAPIBase
	}
	return &Config{Mode: ModeLive, RunID: runID, APIBase: apiBase}, nil
}

func normalizeAPIBase(value string) string {
	value = strings.TrimSpace(value)
	return strings.TrimRight(value, "/")
}

// LoadConfig reads a YAML configuration document from the supplied URL via
// the abstract file storage layer.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
