package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance.
// If no config was provided via Configure(), the default stdout-only
// configuration is used.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		cfg := logConfig
		if cfg == nil {
			cfg = DefaultConfig()
			cfg.File = ""
		}

		var err error
		instance, err = NewLogger(cfg)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
