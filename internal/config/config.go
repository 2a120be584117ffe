package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Drafts  DraftsConfig  `yaml:"drafts"`
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url" default:"http://localhost:8000/api"`
	TokenEnv       string `yaml:"token_env" default:"SITE_ADMIN_TOKEN"`
	TimeoutSeconds int    `yaml:"timeout_seconds" default:"30"`
}

// Token reads the bearer token from the configured environment variable.
func (c APIConfig) Token() string {
	return os.Getenv(c.TokenEnv)
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type StorageConfig struct {
	// Mode selects how committed attachment refs resolve to display URLs.
	// "static" joins refs onto base_url; "s3" presigns against a bucket.
	Mode    string   `yaml:"mode" default:"static"`
	BaseURL string   `yaml:"base_url" default:"http://localhost:8000/storage"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	AccessKeyIDEnv     string `yaml:"access_key_id_env" default:"SITE_ADMIN_S3_ACCESS_KEY_ID"`
	AccessKeySecretEnv string `yaml:"access_key_secret_env" default:"SITE_ADMIN_S3_ACCESS_KEY_SECRET"`
	Endpoint           string `yaml:"endpoint" default:""`
	Bucket             string `yaml:"bucket" default:""`
}

type DraftsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Backend string `yaml:"backend" default:"sqlite"`
	Path    string `yaml:"path" default:"drafts.db"`
}

type EditorConfig struct {
	Command        string `yaml:"command" default:"vi"`
	HighlightTheme string `yaml:"highlight_theme" default:"gruvbox"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(config); err != nil {
		return err
	}

	AppConfig = config
	return nil
}

func validate(config *Config) error {
	switch config.Storage.Mode {
	case "static", "s3":
	default:
		return fmt.Errorf("unsupported storage mode: %q", config.Storage.Mode)
	}
	switch config.Drafts.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported drafts backend: %q", config.Drafts.Backend)
	}
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
