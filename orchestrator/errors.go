package orchestrator

// ConfigError reports an invalid Config field caught by Validate before any
// MC work begins.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "orchestrator: invalid config: " + e.Reason }
