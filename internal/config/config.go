package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var Config *ServerConfig

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string `toml:"allowed_origins"`
	// Port is the port the server should run on.
	Port int `toml:"port"`

	// FirebaseCredentials is the path to the service account key used to reach Firestore and FCM.
	FirebaseCredentials string `toml:"firebase_credentials"`
	// FirebaseProjectID overrides the project ID found in the credentials file.
	FirebaseProjectID string `toml:"firebase_project_id"`

	// JWTSecret signs access tokens. Required.
	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`
	// TokenTTL is how long an access token stays valid after login or registration.
	TokenTTL time.Duration `toml:"-"`

	// SuperAdminID is the one account that can never request its own deletion.
	SuperAdminID string `toml:"super_admin_id"`

	// Timezone is used to interpret the date and time a session is scheduled for.
	Timezone string `toml:"timezone"`
	// SessionDuration is the length of every mentorship session.
	SessionDuration time.Duration `toml:"-"`
	// SessionSweepSchedule is a cron spec for the periodic session status sweep. Empty disables it.
	SessionSweepSchedule string `toml:"session_sweep_schedule"`

	// RedisAddr enables token revocation on logout when set.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// ActivityTimeout bounds each detached activity log or notification write.
	ActivityTimeout time.Duration `toml:"-"`
}

// fileConfig mirrors the duration fields of ServerConfig as strings, since TOML has no duration type.
type fileConfig struct {
	ServerConfig
	TokenTTL        string `toml:"token_ttl"`
	SessionDuration string `toml:"session_duration"`
	ActivityTimeout string `toml:"activity_timeout"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		AllowedOrigins:      []string{"*"},
		Port:                8080,
		FirebaseCredentials: "firebase-config.json",
		JWTIssuer:           "mentorapp",
		TokenTTL:            time.Hour * 24 * 7,
		Timezone:            "UTC",
		SessionDuration:     30 * time.Minute,
		ActivityTimeout:     10 * time.Second,
	}
}

// Load builds the configuration from the defaults, an optional TOML file and the environment, in
// that order of precedence. A .env file in the working directory is loaded into the environment first.
func Load() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.toml"
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *ServerConfig) error {
	fc := fileConfig{ServerConfig: *cfg}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return errors.Wrapf(err, "failed to decode toml file with path: %s", path)
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"token_ttl", fc.TokenTTL, &fc.ServerConfig.TokenTTL},
		{"session_duration", fc.SessionDuration, &fc.ServerConfig.SessionDuration},
		{"activity_timeout", fc.ActivityTimeout, &fc.ServerConfig.ActivityTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return errors.Wrapf(err, "failed to parse %s", d.name)
		}
		*d.dst = parsed
	}

	*cfg = fc.ServerConfig
	return nil
}

func loadEnv(cfg *ServerConfig) error {
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	var err error
	if cfg.Port, err = getenvInt("PORT", cfg.Port); err != nil {
		return err
	}
	if cfg.RedisDB, err = getenvInt("REDIS_DB", cfg.RedisDB); err != nil {
		return err
	}
	if cfg.TokenTTL, err = getenvDuration("TOKEN_TTL", cfg.TokenTTL); err != nil {
		return err
	}
	if cfg.SessionDuration, err = getenvDuration("SESSION_DURATION", cfg.SessionDuration); err != nil {
		return err
	}
	if cfg.ActivityTimeout, err = getenvDuration("ACTIVITY_TIMEOUT", cfg.ActivityTimeout); err != nil {
		return err
	}

	cfg.FirebaseCredentials = getenv("FIREBASE_CREDENTIALS", cfg.FirebaseCredentials)
	cfg.FirebaseProjectID = getenv("FIREBASE_PROJECT_ID", cfg.FirebaseProjectID)
	cfg.JWTSecret = getenv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getenv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.SuperAdminID = getenv("SUPER_ADMIN_ID", cfg.SuperAdminID)
	cfg.Timezone = getenv("TIMEZONE", cfg.Timezone)
	cfg.SessionSweepSchedule = getenv("SESSION_SWEEP_SCHEDULE", cfg.SessionSweepSchedule)
	cfg.RedisAddr = getenv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getenv("REDIS_PASSWORD", cfg.RedisPassword)
	return nil
}

// Validate checks the configuration for values the server cannot start with.
func (c *ServerConfig) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is not set")
	}
	if c.Port <= 0 {
		return errors.Errorf("invalid port: %d", c.Port)
	}
	if c.TokenTTL <= 0 {
		return errors.Errorf("token_ttl must be positive, got %v", c.TokenTTL)
	}
	if c.SessionDuration <= 0 {
		return errors.Errorf("session_duration must be positive, got %v", c.SessionDuration)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.Wrapf(err, "invalid timezone: %s", c.Timezone)
	}
	return nil
}

// Location returns the time zone sessions are scheduled in. Falls back to UTC.
func (c *ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", key)
	}
	return parsed, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", key)
	}
	return parsed, nil
}

func init() {
	Config = DefaultConfig()
}
