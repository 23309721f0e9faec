package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lotflow/internal/config"
	"lotflow/internal/daemon"
	"lotflow/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withServices wires the full engine stack for a one-shot command and tears
// it down afterwards. Engine logging goes to stderr at warn level so command
// output stays clean.
func (c *commandContext) withServices(fn func(*daemon.Services) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	services, err := daemon.NewServices(cfg, logger)
	if err != nil {
		return err
	}
	defer services.Close()

	return fn(services)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
