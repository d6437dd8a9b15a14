package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store  StoreConfig
	Assets AssetsConfig
	Portal PortalConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Log    LogConfig
}

// StoreConfig locates the flat-file data directory.
type StoreConfig struct {
	DataDir string
}

// AssetsConfig locates report images (logo, signatures, student photos).
type AssetsConfig struct {
	Dir string
}

// PortalConfig carries the portal's fixed credentials and presentation
// settings. The teacher credential is a plain config value and passwords are
// compared in plaintext; hardening is out of scope for this portal.
type PortalConfig struct {
	TeacherUsername        string
	TeacherPassword        string
	DefaultStudentPassword string
	ConfirmTTL             time.Duration
	SchoolName             string
	SchoolMotto            string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{DataDir: v.GetString("DATA_DIR")}
	cfg.Assets = AssetsConfig{Dir: v.GetString("ASSETS_DIR")}

	cfg.Portal = PortalConfig{
		TeacherUsername:        v.GetString("TEACHER_USERNAME"),
		TeacherPassword:        v.GetString("TEACHER_PASSWORD"),
		DefaultStudentPassword: v.GetString("DEFAULT_STUDENT_PASSWORD"),
		ConfirmTTL:             parseDuration(v.GetString("CONFIRM_TTL"), 30*time.Second),
		SchoolName:             v.GetString("SCHOOL_NAME"),
		SchoolMotto:            v.GetString("SCHOOL_MOTTO"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DATA_DIR", "./student_data")
	v.SetDefault("ASSETS_DIR", "./assets")

	v.SetDefault("TEACHER_USERNAME", "Abdul")
	v.SetDefault("TEACHER_PASSWORD", "123456")
	v.SetDefault("DEFAULT_STUDENT_PASSWORD", "123456")
	v.SetDefault("CONFIRM_TTL", "30s")
	v.SetDefault("SCHOOL_NAME", "Unity Model College")
	v.SetDefault("SCHOOL_MOTTO", "Knowledge and Character")

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
