package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	for i := range c.Locations.Catalog {
		entry := &c.Locations.Catalog[i]
		entry.ID = strings.ToLower(strings.TrimSpace(entry.ID))
		entry.Name = strings.TrimSpace(entry.Name)
		entry.Type = strings.ToLower(strings.TrimSpace(entry.Type))
	}

	c.Workflow.DigestSchedule = strings.TrimSpace(c.Workflow.DigestSchedule)
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
