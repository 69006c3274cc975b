// Package nexus loads application configuration from the environment and an
// optional config file, with environment variables taking precedence, and
// validates the result with struct tags.
package nexus

import (
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Error codes surfaced to callers instead of library-specific errors.
const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// ConfigError is a typed configuration loading failure.
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Loader reads configuration into a struct pointer.
type Loader struct {
	fileName string
	validate *validator.Validate
}

// Option configures a Loader.
type Option func(*Loader)

// WithFileName sets an explicit configuration file to merge under the
// environment.
func WithFileName(name string) Option {
	return func(l *Loader) {
		l.fileName = name
	}
}

// NewLoader creates a loader. By default it reads only the environment plus a
// local .env file when one exists.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{validate: validator.New()}
	for _, opt := range opts {
		opt(l)
	}
	if l.fileName == "" {
		if _, err := os.Stat(".env"); err == nil {
			l.fileName = ".env"
		}
	}
	return l
}

// Load populates cfg from the environment (and the config file, if any) and
// validates it. cfg must be a pointer to a struct.
func (l *Loader) Load(cfg interface{}) error {
	if reflect.ValueOf(cfg).Kind() != reflect.Ptr {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment variables", Cause: err}
	}

	if l.fileName != "" {
		if err := l.mergeFile(cfg); err != nil {
			return err
		}
	}

	if err := l.validate.Struct(cfg); err != nil {
		return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
	}
	return nil
}

// mergeFile reads the file into a fresh copy of the config struct and merges
// it underneath the environment values.
func (l *Loader) mergeFile(cfg interface{}) error {
	fileCfg := reflect.New(reflect.ValueOf(cfg).Elem().Type()).Interface()

	if err := cleanenv.ReadConfig(l.fileName, fileCfg); err != nil {
		return &ConfigError{
			Code:    ErrCodeFileNotFound,
			Message: fmt.Sprintf("failed to read configuration file: %s", l.fileName),
			Cause:   err,
		}
	}

	if err := mergo.MergeWithOverwrite(cfg, fileCfg); err != nil {
		return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge configuration sources", Cause: err}
	}
	return nil
}
