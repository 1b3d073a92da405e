package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Connect   ConnectConfig   `yaml:"connect"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Supabase  SupabaseConfig  `yaml:"supabase"`
	Team      TeamConfig      `yaml:"team"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// AppConfig holds deployment-wide settings.
type AppConfig struct {
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	// PublicURL is the dashboard origin used to build post-connect redirects.
	PublicURL string `yaml:"public_url" env:"APP_URL" env-default:"http://localhost:5173"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"               env:"HOST"                      env-default:"0.0.0.0"`
	Port            int           `yaml:"port"               env:"PORT"                      env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"       env:"SERVER_READ_TIMEOUT"       env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"      env:"SERVER_WRITE_TIMEOUT"      env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"       env:"SERVER_IDLE_TIMEOUT"       env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"   env:"SERVER_SHUTDOWN_TIMEOUT"   env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// RedisConfig holds the connection used for short-lived connect state.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
}

// AuthConfig holds dashboard session settings.
type AuthConfig struct {
	SessionSecret    string        `yaml:"session_secret"     env:"SESSION_SECRET"          env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"ewasl"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	ResetTokenTTL    time.Duration `yaml:"reset_token_ttl"    env:"AUTH_RESET_TOKEN_TTL"    env-default:"1h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// ConnectConfig holds social connect-flow settings.
type ConnectConfig struct {
	// TokenEncryptionKey seals provider tokens at rest (AES-256, 32 bytes).
	TokenEncryptionKey string        `yaml:"token_encryption_key" env:"TOKEN_ENCRYPTION_KEY" env-required:"true"`
	StateTTL           time.Duration `yaml:"state_ttl"            env:"CONNECT_STATE_TTL"      env-default:"10m"`
	CompletionTTL      time.Duration `yaml:"completion_ttl"       env:"CONNECT_COMPLETION_TTL" env-default:"5m"`
	RefreshWindow      time.Duration `yaml:"refresh_window"       env:"CONNECT_REFRESH_WINDOW" env-default:"24h"`
}

// PlatformCredentials holds one platform's OAuth application.
type PlatformCredentials struct {
	ClientID     string `yaml:"client_id"     env:"CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"CLIENT_SECRET"`
	CallbackURL  string `yaml:"callback_url"  env:"CALLBACK_URL"`
}

// Configured reports whether every credential is present.
func (c PlatformCredentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.CallbackURL != ""
}

// PlatformsConfig holds per-platform OAuth applications.
// Env names are prefixed, e.g. TWITTER_CLIENT_ID.
type PlatformsConfig struct {
	Twitter   PlatformCredentials `yaml:"twitter"   env-prefix:"TWITTER_"`
	Facebook  PlatformCredentials `yaml:"facebook"  env-prefix:"FACEBOOK_"`
	Instagram PlatformCredentials `yaml:"instagram" env-prefix:"INSTAGRAM_"`
	LinkedIn  PlatformCredentials `yaml:"linkedin"  env-prefix:"LINKEDIN_"`
	Snapchat  PlatformCredentials `yaml:"snapchat"  env-prefix:"SNAPCHAT_"`
	TikTok    PlatformCredentials `yaml:"tiktok"    env-prefix:"TIKTOK_"`
	YouTube   PlatformCredentials `yaml:"youtube"   env-prefix:"YOUTUBE_"`
}

// For returns the credentials of the named platform.
func (c PlatformsConfig) For(platform string) (PlatformCredentials, bool) {
	switch platform {
	case "twitter":
		return c.Twitter, true
	case "facebook":
		return c.Facebook, true
	case "instagram":
		return c.Instagram, true
	case "linkedin":
		return c.LinkedIn, true
	case "snapchat":
		return c.Snapchat, true
	case "tiktok":
		return c.TikTok, true
	case "youtube":
		return c.YouTube, true
	}
	return PlatformCredentials{}, false
}

// Enabled returns the platforms whose credentials are fully configured.
func (c PlatformsConfig) Enabled() []string {
	var out []string
	for _, name := range []string{"twitter", "facebook", "instagram", "linkedin", "snapchat", "tiktok", "youtube"} {
		if creds, _ := c.For(name); creds.Configured() {
			out = append(out, name)
		}
	}
	return out
}

// IsEnabled checks if the given platform is configured.
func (c PlatformsConfig) IsEnabled(platform string) bool {
	return slices.Contains(c.Enabled(), platform)
}

// SupabaseConfig holds the Supabase project used for media storage.
type SupabaseConfig struct {
	URL            string `yaml:"url"              env:"SUPABASE_URL"`
	AnonKey        string `yaml:"anon_key"         env:"SUPABASE_ANON_KEY"`
	ServiceRoleKey string `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY"`
	MediaBucket    string `yaml:"media_bucket"     env:"SUPABASE_MEDIA_BUCKET"     env-default:"media"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"SUPABASE_MAX_UPLOAD_BYTES" env-default:"26214400"`
}

// Enabled reports whether media uploads can be served.
func (c SupabaseConfig) Enabled() bool {
	return c.URL != "" && c.ServiceRoleKey != ""
}

// TeamConfig holds team management settings.
type TeamConfig struct {
	InvitationTTL time.Duration `yaml:"invitation_ttl" env:"TEAM_INVITATION_TTL" env-default:"168h"`
	MaxMembers    int           `yaml:"max_members"    env:"TEAM_MAX_MEMBERS"    env-default:"25"`
}

// SchedulerConfig holds cron specs for background jobs.
type SchedulerConfig struct {
	Enabled         bool   `yaml:"enabled"         env:"SCHEDULER_ENABLED"         env-default:"true"`
	PublishSpec     string `yaml:"publish_spec"    env:"SCHEDULER_PUBLISH_SPEC"    env-default:"@every 1m"`
	RefreshSpec     string `yaml:"refresh_spec"    env:"SCHEDULER_REFRESH_SPEC"    env-default:"@every 15m"`
	MaintenanceSpec string `yaml:"maintenance_spec" env:"SCHEDULER_MAINTENANCE_SPEC" env-default:"@hourly"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
