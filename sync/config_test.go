package sync

import (
	"strings"
	"testing"
)

func TestYAMLConfigUnmarshaler(t *testing.T) {
	yaml := `
api:
  key: test-key
  conflict:
    statuses: [400]
    messageContains: already exists
  countryFormat: alpha2
log:
  level: debug
`
	config, err := YAMLConfigUnmarshaler{}.Unmarshal(strings.NewReader(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if config.API.Key != "test-key" {
		t.Errorf("Expected api key but have: %q", config.API.Key)
	}
	if config.API.Endpoint != DefaultEndpoint {
		t.Errorf("Expected default endpoint but have: %q", config.API.Endpoint)
	}
	if len(config.API.Conflict.Statuses) != 1 || config.API.Conflict.Statuses[0] != 400 {
		t.Errorf("Expected configured conflict statuses but have: %v", config.API.Conflict.Statuses)
	}
	if config.API.Conflict.MessageContains != "already exists" {
		t.Errorf("Expected configured conflict message but have: %q", config.API.Conflict.MessageContains)
	}
	if config.Log.Level != "debug" || config.Log.Format != "text" {
		t.Errorf("Expected log settings with defaults but have: %+v", config.Log)
	}
}

func TestYAMLConfigUnmarshaler_ConflictDefaults(t *testing.T) {
	config, err := YAMLConfigUnmarshaler{}.Unmarshal(strings.NewReader("api:\n  key: k\n"))
	if err != nil {
		t.Fatal(err)
	}
	expected := DefaultConflictSettings()
	if config.API.Conflict.MessageContains != expected.MessageContains {
		t.Errorf("Expected default conflict settings but have: %+v", config.API.Conflict)
	}
}

func TestYAMLConfigUnmarshaler_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_SHARPI_API_KEY", "secret-from-env")
	yaml := "api:\n  key: ${TEST_SHARPI_API_KEY}\n"
	config, err := YAMLConfigUnmarshaler{}.Unmarshal(strings.NewReader(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if config.API.Key != "secret-from-env" {
		t.Errorf("Expected api key expanded from env but have: %q", config.API.Key)
	}
}

func TestYAMLConfigUnmarshaler_MissingKey(t *testing.T) {
	_, err := YAMLConfigUnmarshaler{}.Unmarshal(strings.NewReader("api:\n  endpoint: http://localhost\n"))
	if err == nil || !strings.Contains(err.Error(), "api.key") {
		t.Errorf("Expected missing api.key error but have: %v", err)
	}
}

func TestConfigValidate_Enumerations(t *testing.T) {
	config := Config{API: APISettings{Key: "k", CountryFormat: "alpha3"}}
	if err := config.Validate(); err == nil {
		t.Error("Expected error for unsupported countryFormat")
	}
	config = Config{API: APISettings{Key: "k", AttributeKeyCase: "kebab"}}
	if err := config.Validate(); err == nil {
		t.Error("Expected error for unsupported attributeKeyCase")
	}
}

func TestIsConflict(t *testing.T) {
	settings := DefaultConflictSettings()
	if !settings.IsConflict(400, `{"message": "duplicate key value"}`) {
		t.Error("Expected 400 with duplicate message to be a conflict")
	}
	if settings.IsConflict(400, `{"message": "invalid payload"}`) {
		t.Error("Expected 400 without duplicate message not to be a conflict")
	}
	if !settings.IsConflict(409, `{"message": "duplicate key"}`) {
		t.Error("Expected 409 duplicate to be a conflict")
	}
	if settings.IsConflict(500, "duplicate key") {
		t.Error("Expected 5xx never to be a conflict")
	}
}
