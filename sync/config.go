package sync

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/config"
)

// DefaultEndpoint is the production Sharpi partner API base URL.
const DefaultEndpoint = "https://api.sharpi.com.br/v1/partner"

type Config struct {
	API APISettings
	Log LogSettings
}

type APISettings struct {
	// Key is the Sharpi API key, sent as the X-API-Key header.
	Key string
	// Endpoint is the base URL for the Sharpi partner API.
	// Defaults to DefaultEndpoint.
	Endpoint string
	// Conflict controls how a duplicate-resource response is recognised.
	Conflict ConflictSettings
	// CountryFormat selects canonicalisation of address country values:
	// "" (passthrough), "alpha2" or "name".
	CountryFormat string `yaml:"countryFormat"`
	// AttributeKeyCase selects casing applied to custom attribute keys
	// after normalisation: "" (passthrough), "snake" or "camel".
	AttributeKeyCase string `yaml:"attributeKeyCase"`
}

// ConflictSettings identifies the duplicate-resource response that triggers
// the PATCH fallback. The upstream API is not consistent here, so both the
// status set and the message fragment are configurable.
type ConflictSettings struct {
	// Statuses are response status codes treated as a duplicate conflict.
	// A status listed here with a MessageContains set only counts as a
	// conflict when the response body contains the fragment.
	Statuses []int
	// MessageContains is the body fragment identifying a duplicate
	// (e.g. "duplicate key"). Empty matches any body.
	MessageContains string `yaml:"messageContains"`
}

type LogSettings struct {
	// Level is the minimum log level (debug, info, warn, error). Default: info.
	Level string
	// Format is the log output format (text, json). Default: text.
	Format string
}

// DefaultConflictSettings matches the Sharpi API's observed duplicate
// response: a 400 whose message mentions a duplicate key, plus a plain 409.
func DefaultConflictSettings() ConflictSettings {
	return ConflictSettings{
		Statuses:        []int{400, 409},
		MessageContains: "duplicate key",
	}
}

// Validate checks that required settings are present and that enumerated
// settings hold recognised values.
func (c Config) Validate() error {
	if c.API.Key == "" {
		return errors.New("api.key is required")
	}
	switch c.API.CountryFormat {
	case "", "alpha2", "name":
	default:
		return fmt.Errorf("unsupported api.countryFormat %q", c.API.CountryFormat)
	}
	switch c.API.AttributeKeyCase {
	case "", "snake", "camel":
	default:
		return fmt.Errorf("unsupported api.attributeKeyCase %q", c.API.AttributeKeyCase)
	}
	return nil
}

type ConfigUnmarshaler interface {
	Unmarshal(sources ...io.Reader) (Config, error)
}

// YAMLConfigUnmarshaler loads Config from YAML sources with environment
// variable expansion, so secrets like the API key can be referenced as
// ${SHARPI_API_KEY} rather than stored in the file.
type YAMLConfigUnmarshaler struct{}

func (u YAMLConfigUnmarshaler) Unmarshal(sources ...io.Reader) (Config, error) {
	var result Config
	var options []config.YAMLOption
	for _, s := range sources {
		options = append(options, config.Source(s))
	}
	options = append(options, config.Expand(os.LookupEnv))
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}
	readError := func(key string, cause error) error {
		return fmt.Errorf("failed to read '%s' from yaml config %w", key, cause)
	}
	key := "api"
	err = yaml.Get(key).Populate(&result.API)
	if err != nil {
		return result, readError(key, err)
	}
	key = "log"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Log)
		if err != nil {
			return result, readError(key, err)
		}
	}

	applyConfigDefaults(&result)

	return result, result.Validate()
}

func applyConfigDefaults(c *Config) {
	if c.API.Endpoint == "" {
		c.API.Endpoint = DefaultEndpoint
	}
	if len(c.API.Conflict.Statuses) == 0 && c.API.Conflict.MessageContains == "" {
		c.API.Conflict = DefaultConflictSettings()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// LoadConfigFromFile loads and validates Config from a YAML file on disk.
func LoadConfigFromFile(path string) (Config, error) {
	var result Config
	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("failed to open config file %w", err)
	}
	defer f.Close()
	return YAMLConfigUnmarshaler{}.Unmarshal(f)
}
