package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCampaign()
	c.normalizeMedia()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeCampaign() {
	c.Campaign.ID = strings.TrimSpace(c.Campaign.ID)
	c.Campaign.UserID = strings.TrimSpace(c.Campaign.UserID)
	c.Campaign.BackendURL = strings.TrimRight(strings.TrimSpace(c.Campaign.BackendURL), "/")
	c.Campaign.APIToken = strings.TrimSpace(c.Campaign.APIToken)
	c.Campaign.BundleLabel = strings.TrimSpace(c.Campaign.BundleLabel)
	if c.Campaign.BundleLabel == "" {
		c.Campaign.BundleLabel = defaultBundleLabel
	}
	if c.Campaign.RequestTimeout <= 0 {
		c.Campaign.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeMedia() {
	c.Media.FFprobeBinary = strings.TrimSpace(c.Media.FFprobeBinary)
	if c.Media.ProbeTimeout <= 0 {
		c.Media.ProbeTimeout = defaultProbeTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
