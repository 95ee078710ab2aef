package config

const (
	defaultStateDir           = "~/.local/share/placard"
	defaultLogDir             = "~/.local/share/placard/logs"
	defaultAPIBind            = "127.0.0.1:7519"
	defaultBundleLabel        = "bundle"
	defaultRequestTimeout     = 30
	defaultProbeTimeout       = 30
	defaultQueuePollInterval  = 5
	defaultErrorRetryInterval = 10
	defaultSnapshotInterval   = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Campaign: Campaign{
			BundleLabel:    defaultBundleLabel,
			RequestTimeout: defaultRequestTimeout,
		},
		Media: Media{
			ProbeTimeout: defaultProbeTimeout,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			SnapshotInterval:   defaultSnapshotInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
