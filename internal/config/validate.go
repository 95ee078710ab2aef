package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCampaign(); err != nil {
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

func (c *Config) validateCampaign() error {
	if c.Campaign.BackendURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/placard/config.toml"
		}
		return fmt.Errorf("campaign.backend_url is required. Set PLACARD_BACKEND_URL or edit %s (create with 'placard config init')", defaultPath)
	}
	if _, err := url.ParseRequestURI(c.Campaign.BackendURL); err != nil {
		return fmt.Errorf("campaign.backend_url is not a valid URL: %w", err)
	}
	if c.Campaign.ID == "" {
		return fmt.Errorf("campaign.id is required. Set PLACARD_CAMPAIGN_ID or the campaign.id config field")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	for name, value := range map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"workflow.snapshot_interval":    c.Workflow.SnapshotInterval,
		"campaign.request_timeout":      c.Campaign.RequestTimeout,
		"media.probe_timeout":           c.Media.ProbeTimeout,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
