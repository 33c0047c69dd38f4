package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/glyphd/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "GLYPHD_"

// LoadConfig loads configuration with proper precedence: CLI args > env vars > config file.
// If cmd is provided, flags explicitly set via CLI will not be overwritten.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	// Build set of flags explicitly changed via CLI
	changedFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changedFlags[f.Name] = true
			}
		})
	}

	var configPath string
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		configPath = f.String()
	}

	if configPath != "" {
		config, err := readTOML(configPath)
		if err != nil {
			return err
		}

		for i := 0; i < v.NumField(); i++ {
			fieldType := t.Field(i)
			if changedFlags[fieldNameToFlag(fieldType.Name)] {
				continue
			}

			if tomlPath := fieldType.Tag.Get("toml"); tomlPath != "" {
				if value := getNestedValue(config, tomlPath); value != nil {
					if err := setFieldValue(v.Field(i), value); err != nil {
						return fmt.Errorf("invalid value for %s: %w", tomlPath, err)
					}
				}
			}
		}
	}

	// Environment overrides, except for CLI-set flags
	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		if changedFlags[fieldNameToFlag(fieldType.Name)] {
			continue
		}

		if envKey := fieldType.Tag.Get("env"); envKey != "" {
			if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
				if err := setFieldValueFromString(v.Field(i), envValue); err != nil {
					return fmt.Errorf("invalid value for %s%s: %w", EnvPrefix, envKey, err)
				}
			}
		}
	}

	return nil
}

// readTOML parses path into a generic map. A missing file yields an empty map.
func readTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return config, nil
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "LoggingLevel" -> "logging-level", "Port" -> "port".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// setFieldValue assigns a decoded TOML value. A value of the wrong type is
// an error.
func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		switch s := value.(type) {
		case string:
			field.SetString(s)
		case []any:
			// Lists map onto comma-separated string options
			parts := make([]string, 0, len(s))
			for _, v := range s {
				parts = append(parts, fmt.Sprint(v))
			}
			field.SetString(strings.Join(parts, ","))
		default:
			return fmt.Errorf("expected string, got %T", value)
		}
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)
	case reflect.Int:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			if arr, ok := value.([]any); ok {
				slice := make([]string, len(arr))
				for i, v := range arr {
					if s, strOk := v.(string); strOk {
						slice[i] = s
					}
				}
				field.Set(reflect.ValueOf(slice))
			}
		}
	}
	return nil
}

// setFieldValueFromString sets a field value from string (for env vars).
func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			// Comma-separated for env vars
			parts := strings.Split(value, ",")
			slice := make([]string, len(parts))
			for i, part := range parts {
				slice[i] = strings.TrimSpace(part)
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
	return nil
}

// LoadLoggingConfig loads logging configuration from a TOML config file.
// Returns default config if file doesn't exist or can't be parsed.
func LoadLoggingConfig(configPath string) logging.Config {
	cfg := logging.Config{
		Level:   "info",
		Format:  "text",
		Modules: make(map[string]string),
	}

	if configPath == "" {
		return cfg
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg
	}

	var rawConfig struct {
		Logging map[string]string `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &rawConfig); err != nil {
		return cfg
	}

	// level and format are global, the rest are module levels
	for key, value := range rawConfig.Logging {
		switch key {
		case "level":
			cfg.Level = value
		case "format":
			cfg.Format = value
		default:
			cfg.Modules[key] = value
		}
	}

	return cfg
}
