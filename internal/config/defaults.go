package config

const (
	defaultDataDir                = "~/.local/share/lotflow/data"
	defaultLogDir                 = "~/.local/share/lotflow/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultAttentionPollInterval  = 30
	defaultBottleneckPollInterval = 60
	defaultDigestSchedule         = "0 8 * * *"
	defaultNtfyRequestTimeout     = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workflow: Workflow{
			AttentionPollInterval:  defaultAttentionPollInterval,
			BottleneckPollInterval: defaultBottleneckPollInterval,
			DigestSchedule:         defaultDigestSchedule,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
			Attention:      true,
			Bottlenecks:    true,
			Digest:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
