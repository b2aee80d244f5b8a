// Package config loads the client settings: where the API lives, how the
// screen looks and where diagnostics go.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

const DefaultBaseURL = "http://localhost:8080/tp333/api"

type Config struct {
	API APIConfig `toml:"api"`
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url" validate:"required,url"`
	// TimeoutSeconds bounds each request; 0 leaves it to the transport.
	TimeoutSeconds int `toml:"timeout_seconds" validate:"min=0"`
}

type UIConfig struct {
	Theme string `toml:"theme" validate:"oneof=classic neon mono"`
	Color string `toml:"color" validate:"oneof=auto always never"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn warning error"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func Default() *Config {
	return &Config{
		API: APIConfig{BaseURL: DefaultBaseURL},
		UI:  UIConfig{Theme: "classic", Color: "auto"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. An empty path yields the
// defaults; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", abs)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file at line %d, column %d: %s", row, col, derr.Error())
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// ValidationError names the offending setting.
type ValidationError struct {
	FieldPath string
	Message   string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.FieldPath+": "+e.Message)
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

var sectionOf = map[string]string{
	"APIConfig": "api",
	"UIConfig":  "ui",
	"LogConfig": "log",
}

var keyOf = map[string]string{
	"BaseURL":        "base_url",
	"TimeoutSeconds": "timeout_seconds",
	"Theme":          "theme",
	"Color":          "color",
	"Level":          "level",
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var out ValidationErrors
	for _, section := range []interface{}{c.API, c.UI, c.Log} {
		err := validate.Struct(section)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			path := sectionOf[strings.SplitN(fe.StructNamespace(), ".", 2)[0]] + "." + keyOf[fe.StructField()]
			out = append(out, ValidationError{FieldPath: path, Message: describe(fe)})
		}
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("%q is not an absolute URL", fe.Value())
	case "oneof":
		return fmt.Sprintf("%v is not one of [%s]", fe.Value(), fe.Param())
	case "min":
		return "must be at least " + fe.Param()
	}
	return "failed " + fe.Tag()
}
