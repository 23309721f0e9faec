package config

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

var locationTypes = map[string]struct{}{
	"showroom":  {},
	"garage":    {},
	"inventory": {},
	"floor":     {},
	"lot":       {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLocations(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateLocations() error {
	seen := make(map[string]struct{}, len(c.Locations.Catalog))
	for _, entry := range c.Locations.Catalog {
		if entry.ID == "" {
			return errors.New("locations.catalog entries require an id")
		}
		if _, ok := seen[entry.ID]; ok {
			return fmt.Errorf("locations.catalog has duplicate id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
		if _, ok := locationTypes[entry.Type]; !ok {
			return fmt.Errorf("locations.catalog entry %q has unknown type %q", entry.ID, entry.Type)
		}
		if entry.Capacity < 0 {
			return fmt.Errorf("locations.catalog entry %q has negative capacity", entry.ID)
		}
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.AttentionPollInterval <= 0 {
		return errors.New("workflow.attention_poll_interval must be positive")
	}
	if c.Workflow.BottleneckPollInterval <= 0 {
		return errors.New("workflow.bottleneck_poll_interval must be positive")
	}
	if c.Workflow.DigestSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(c.Workflow.DigestSchedule); err != nil {
			return fmt.Errorf("workflow.digest_schedule is not a valid cron expression: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
