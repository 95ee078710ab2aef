package testsupport

import (
	"path/filepath"
	"testing"

	"placard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Campaign.ID = "cmp-test"
	cfgVal.Campaign.UserID = "user-test"
	cfgVal.Campaign.BackendURL = "http://127.0.0.1:0"
	cfgVal.Campaign.APIToken = "test-token"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackendURL points the test config at the given campaign backend.
func WithBackendURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Campaign.BackendURL = url
	}
}

// WithBundleLabel overrides the synthetic filename label on the test config.
func WithBundleLabel(label string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Campaign.BundleLabel = label
	}
}
