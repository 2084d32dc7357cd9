package config

import (
	"fmt"
	"os"
	"time"
)

// ConfigLoadResult is the outcome of loading a single configuration value.
//
// Loading never fails hard: when parsing or validation rejects the
// environment value, the default is used instead and the rejection is
// reported as a warning. Value holds either the parsed environment value
// or the default, so callers can always type-assert it.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString reads a string from the environment, returning defaultValue
// when the variable is unset or empty. No validation is applied; use
// LoadEnvWithFallback when the value needs checking.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// fallback builds the result for a rejected environment value.
func fallback(envKey, raw string, reason error, defaultValue interface{}) ConfigLoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, reason, defaultValue)
	return ConfigLoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}

// LoadEnvWithFallback reads a string from the environment and validates it.
//
// An unset or empty variable yields the default without warning. A set but
// invalid value yields the default with a warning and FallbackApplied set.
// A nil validator accepts everything.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, value, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration reads a time.Duration from the environment. The value
// must be in Go duration syntax ("30s", "1h30m"). Parse and validation
// failures fall back to the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback(envKey, valueStr, err, defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, valueStr, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt reads an int from the environment. Parse and validation
// failures fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	var parsed int
	if _, err := fmt.Sscanf(valueStr, "%d", &parsed); err != nil {
		return fallback(envKey, valueStr, fmt.Errorf("invalid integer format"), defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, valueStr, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvFloat reads a float64 from the environment. Parse and validation
// failures fall back to the default with a warning.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	var parsed float64
	if _, err := fmt.Sscanf(valueStr, "%g", &parsed); err != nil {
		return fallback(envKey, valueStr, fmt.Errorf("invalid number format"), defaultValue)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallback(envKey, valueStr, err, defaultValue)
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool reads a bool from the environment. Accepted spellings follow
// strconv.ParseBool: "1", "t", "true" and their upper/title-case variants,
// and the corresponding false forms. Anything else falls back to the
// default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return ConfigLoadResult{Value: true}
	case "0", "f", "F", "false", "FALSE", "False":
		return ConfigLoadResult{Value: false}
	default:
		return fallback(envKey, valueStr,
			fmt.Errorf("invalid boolean format, expected 'true' or 'false'"), defaultValue)
	}
}
