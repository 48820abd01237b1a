package config

import (
	"os"
	"reflect"
	"testing"

	"github.com/JasonLG1979/asound-conf-wizard/internal/probe"
)

// TestConfig represents a test configuration structure.
type TestConfig struct {
	Config string `help:"Config file path"`

	// Basic types
	StringField string   `toml:"test.string_field" env:"STRING_FIELD"`
	BoolField   bool     `toml:"test.bool_field" env:"BOOL_FIELD"`
	IntField    int      `toml:"test.int_field" env:"INT_FIELD"`
	SliceField  []string `toml:"test.slice_field" env:"SLICE_FIELD"`

	// Nested config
	NestedString string `toml:"nested.value" env:"NESTED_VALUE"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test_config_*.toml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		t.Fatalf("Failed to write to temp file: %v", writeErr)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "hello world"
bool_field = true
int_field = 42
slice_field = ["item1", "item2", "item3"]

[nested]
value = "nested value"
`)

	config := &TestConfig{Config: path}

	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "hello world" {
		t.Errorf("Expected StringField to be 'hello world', got '%s'", config.StringField)
	}

	if !config.BoolField {
		t.Errorf("Expected BoolField to be true, got %v", config.BoolField)
	}

	if config.IntField != 42 {
		t.Errorf("Expected IntField to be 42, got %d", config.IntField)
	}

	expectedSlice := []string{"item1", "item2", "item3"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, config.SliceField)
	}

	if config.NestedString != "nested value" {
		t.Errorf("Expected NestedString to be 'nested value', got '%s'", config.NestedString)
	}
}

func TestLoadConfigFromEnvVars(t *testing.T) {
	t.Setenv("AWIZ_STRING_FIELD", "env string")
	t.Setenv("AWIZ_BOOL_FIELD", "false")
	t.Setenv("AWIZ_INT_FIELD", "123")
	t.Setenv("AWIZ_SLICE_FIELD", "a,b,c")
	t.Setenv("AWIZ_NESTED_VALUE", "env nested")

	config := &TestConfig{}

	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "env string" {
		t.Errorf("Expected StringField to be 'env string', got '%s'", config.StringField)
	}

	if config.BoolField {
		t.Errorf("Expected BoolField to be false, got %v", config.BoolField)
	}

	if config.IntField != 123 {
		t.Errorf("Expected IntField to be 123, got %d", config.IntField)
	}

	expectedSlice := []string{"a", "b", "c"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, config.SliceField)
	}

	if config.NestedString != "env nested" {
		t.Errorf("Expected NestedString to be 'env nested', got '%s'", config.NestedString)
	}
}

func TestLoadConfigEnvOverridesToml(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "toml value"
bool_field = true
int_field = 100
slice_field = ["toml1", "toml2"]
`)

	t.Setenv("AWIZ_STRING_FIELD", "env override")
	t.Setenv("AWIZ_BOOL_FIELD", "false")

	config := &TestConfig{Config: path}

	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify env vars override TOML values
	if config.StringField != "env override" {
		t.Errorf("Expected StringField to be 'env override', got '%s'", config.StringField)
	}

	if config.BoolField {
		t.Errorf("Expected BoolField to be false (env override), got %v", config.BoolField)
	}

	// Verify TOML values are used when no env override
	if config.IntField != 100 {
		t.Errorf("Expected IntField to be 100 (from TOML), got %d", config.IntField)
	}

	expectedSlice := []string{"toml1", "toml2"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v (from TOML), got %v", expectedSlice, config.SliceField)
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"level1": map[string]any{
			"level2": map[string]any{
				"value": "nested_value",
			},
			"simple": "simple_value",
		},
		"root": "root_value",
	}

	tests := []struct {
		path     string
		expected any
	}{
		{"root", "root_value"},
		{"level1.simple", "simple_value"},
		{"level1.level2.value", "nested_value"},
		{"nonexistent", nil},
		{"level1.nonexistent", nil},
	}

	for _, test := range tests {
		result := getNestedValue(data, test.path)
		if result != test.expected {
			t.Errorf("getNestedValue(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestSetFieldValueFromString(t *testing.T) {
	type TestStruct struct {
		StringField string
		BoolField   bool
		IntField    int
		SliceField  []string
	}

	s := &TestStruct{}
	v := reflect.ValueOf(s).Elem()

	setFieldValueFromString(v.FieldByName("StringField"), "test string")
	if s.StringField != "test string" {
		t.Errorf("Expected StringField to be 'test string', got '%s'", s.StringField)
	}

	setFieldValueFromString(v.FieldByName("BoolField"), "true")
	if !s.BoolField {
		t.Errorf("Expected BoolField to be true, got %v", s.BoolField)
	}

	setFieldValueFromString(v.FieldByName("IntField"), "123")
	if s.IntField != 123 {
		t.Errorf("Expected IntField to be 123, got %d", s.IntField)
	}

	setFieldValueFromString(v.FieldByName("SliceField"), " a , b , c ")
	expectedSlice := []string{"a", "b", "c"}
	if !reflect.DeepEqual(s.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, s.SliceField)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config := &TestConfig{
		Config: "nonexistent_file.toml",
	}

	// Should not fail when file doesn't exist
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
}

func TestLoadLoggingModuleLevels(t *testing.T) {
	path := writeTempConfig(t, `
[logging]
level = "info"
format = "json"
probe = "debug"
wizard = "warn"
asound = "error"
`)

	cfg := LoadLoggingConfig(path)

	if cfg.Level != "info" {
		t.Errorf("Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}

	wantModules := map[string]string{"probe": "debug", "wizard": "warn", "asound": "error"}
	if !reflect.DeepEqual(cfg.Modules, wantModules) {
		t.Errorf("Modules = %v, want %v", cfg.Modules, wantModules)
	}
}

func TestLoadPolicyOverrides(t *testing.T) {
	path := writeTempConfig(t, `
[probe]
scan_ceiling = 25
fallback_rates = [44100, 48000]
`)

	policy := LoadPolicy(path)
	def := probe.DefaultPolicy()

	if policy.ScanCeiling != 25 {
		t.Errorf("ScanCeiling = %d, want 25", policy.ScanCeiling)
	}
	if !reflect.DeepEqual(policy.FallbackRates, []int{44100, 48000}) {
		t.Errorf("FallbackRates = %v", policy.FallbackRates)
	}
	// Unset fields must normalize back to the defaults.
	if policy.MaxRate != def.MaxRate {
		t.Errorf("MaxRate = %d, want default %d", policy.MaxRate, def.MaxRate)
	}
	if policy.PeriodsPerBuffer != def.PeriodsPerBuffer {
		t.Errorf("PeriodsPerBuffer = %d, want default %d", policy.PeriodsPerBuffer, def.PeriodsPerBuffer)
	}
}

func TestLoadPolicyMissingFileYieldsDefaults(t *testing.T) {
	policy := LoadPolicy("nonexistent_file.toml")
	if !reflect.DeepEqual(policy, probe.DefaultPolicy()) {
		t.Errorf("expected default policy, got %+v", policy)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test
invalid toml syntax
`)

	config := &TestConfig{Config: path}

	// Should fail with invalid TOML
	if err := LoadConfig(config, nil); err == nil {
		t.Fatalf("LoadConfig should fail for invalid TOML")
	}
}
