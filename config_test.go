package nightledger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestResolveRuntime(t *testing.T) {
	testCases := []struct {
		name     string
		href     string
		injected string
		expected Config
	}{
		{
			name:     "defaults to demo",
			href:     "http://localhost:8080/",
			expected: Config{Mode: ModeDemo, RunID: "demo"},
		},
		{
			name:     "explicit run selects live",
			href:     "http://localhost:8080/?runId=run-9",
			expected: Config{Mode: ModeLive, RunID: "run-9", APIBase: DefaultLiveAPIBase},
		},
		{
			name:     "live mode with demo run falls back to default live run",
			href:     "http://localhost:8080/?mode=live",
			expected: Config{Mode: ModeLive, RunID: DefaultLiveRunID, APIBase: DefaultLiveAPIBase},
		},
		{
			name:     "demo mode wins over run id",
			href:     "http://localhost:8080/?runId=run-9&mode=demo",
			expected: Config{Mode: ModeDemo, RunID: "demo"},
		},
		{
			name:     "api base from query trimmed",
			href:     "http://localhost:8080/?runId=run-9&apiBase=http://api.internal///",
			expected: Config{Mode: ModeLive, RunID: "run-9", APIBase: "http://api.internal"},
		},
		{
			name:     "injected api base used when query absent",
			href:     "http://localhost:8080/?runId=run-9",
			injected: "http://injected:9000/",
			expected: Config{Mode: ModeLive, RunID: "run-9", APIBase: "http://injected:9000"},
		},
		{
			name:     "invalid mode ignored",
			href:     "http://localhost:8080/?runId=run-9&mode=bogus",
			expected: Config{Mode: ModeLive, RunID: "run-9", APIBase: DefaultLiveAPIBase},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config, err := ResolveRuntime(tc.href, tc.injected)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected.Mode, config.Mode)
			assert.Equal(t, tc.expected.RunID, config.RunID)
			assert.Equal(t, tc.expected.APIBase, config.APIBase)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{Mode: "bogus", RunID: "x"}).Validate())
	assert.Error(t, (&Config{Mode: ModeLive, RunID: "x"}).Validate())
	assert.Error(t, (&Config{Mode: ModeDemo}).Validate())
	assert.NoError(t, (&Config{Mode: ModeLive, RunID: "x", APIBase: "http://api"}).Validate())
}

func TestLoadConfig(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := "mem://localhost/nightledger/config.yaml"
	err := fs.Upload(ctx, URL, 0644, strings.NewReader("mode: live\nrunId: run-3\napiBase: http://api.internal\n"))
	assert.NoError(t, err)

	config, err := LoadConfig(ctx, fs, URL)
	assert.NoError(t, err)
	assert.Equal(t, ModeLive, config.Mode)
	assert.Equal(t, "run-3", config.RunID)
	assert.Equal(t, "http://api.internal", config.APIBase)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := "mem://localhost/nightledger/broken.yaml"
	_ = fs.Upload(ctx, URL, 0644, strings.NewReader("mode: [unterminated"))

	_, err := LoadConfig(ctx, fs, URL)
	assert.Error(t, err)
}
