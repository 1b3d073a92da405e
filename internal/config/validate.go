package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("auth.session_secret must be at least 32 characters (got %d)", len(c.Auth.SessionSecret))
	}

	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be in [4, 31] (got %d)", c.Auth.PasswordHashCost)
	}

	if len(c.Connect.TokenEncryptionKey) != 32 {
		return fmt.Errorf("connect.token_encryption_key must be exactly 32 bytes (got %d)", len(c.Connect.TokenEncryptionKey))
	}

	if err := validateBaseURL(c.App.PublicURL); err != nil {
		return fmt.Errorf("app.public_url: %w", err)
	}

	if err := c.Platforms.validate(); err != nil {
		return fmt.Errorf("platforms: %w", err)
	}

	if c.Supabase.URL != "" && c.Supabase.ServiceRoleKey == "" {
		return fmt.Errorf("supabase.service_role_key is required when supabase.url is set")
	}

	if c.Team.MaxMembers <= 0 {
		return fmt.Errorf("team.max_members must be > 0 (got %d)", c.Team.MaxMembers)
	}

	if c.Scheduler.Enabled {
		if err := c.Scheduler.validate(); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
	}

	return nil
}

// validate rejects partially configured platforms: a client id without a
// secret or callback is always a deployment mistake.
func (p PlatformsConfig) validate() error {
	for _, name := range []string{"twitter", "facebook", "instagram", "linkedin", "snapchat", "tiktok", "youtube"} {
		creds, _ := p.For(name)
		if creds == (PlatformCredentials{}) || creds.Configured() {
			continue
		}
		return fmt.Errorf("%s: client_id, client_secret and callback_url must be set together", name)
	}
	return nil
}

func (s SchedulerConfig) validate() error {
	specs := map[string]string{
		"publish_spec":     s.PublishSpec,
		"refresh_spec":     s.RefreshSpec,
		"maintenance_spec": s.MaintenanceSpec,
	}
	for name, spec := range specs {
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("%s %q: %w", name, spec, err)
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	if strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("must not end with a slash")
	}
	return nil
}
