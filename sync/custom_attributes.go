package sync

import (
	"log/slog"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// customAttributePaths are the record paths that may carry a custom
// attributes mapping, across all stream types.
var customAttributePaths = []string{
	"custom_attributes",
	"billing_address.custom_attributes",
	"shipping_address.custom_attributes",
}

// noValueTokens are textual inputs treated as an absent mapping.
// Matching is case-sensitive.
var noValueTokens = map[string]bool{
	"":     true,
	"None": true,
	"null": true,
}

// AttributeNormalizer converts a custom-attributes field of any input shape
// into a key-value mapping. It never fails: malformed input degrades to an
// empty mapping with a debug-level log entry.
type AttributeNormalizer struct {
	Logger *slog.Logger
}

// Normalize returns the mapping represented by value. Already-normalized
// mappings pass through unchanged, so applying Normalize twice is a no-op.
func (n AttributeNormalizer) Normalize(value interface{}) map[string]interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return v
	case string:
		return n.normalizeText(v)
	default:
		return map[string]interface{}{}
	}
}

func (n AttributeNormalizer) normalizeText(text string) map[string]interface{} {
	if noValueTokens[text] {
		return map[string]interface{}{}
	}

	// Cheap structural pre-check before invoking any parser. Source systems
	// routinely send free text in this field and a run can carry tens of
	// thousands of records.
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return map[string]interface{}{}
	}

	// JSON object first, then the Python-style literal form
	// (single quotes, True/False/None) that legacy extracts emit.
	if gjson.Valid(text) {
		if m, ok := gjson.Parse(text).Value().(map[string]interface{}); ok {
			return m
		}
	}

	parsed, err := parseLiteral(text)
	if err != nil {
		n.logger().Debug("failed to parse custom attributes", "value", text, "error", err)
		return map[string]interface{}{}
	}
	m, ok := parsed.(map[string]interface{})
	if !ok {
		n.logger().Debug("custom attributes literal is not a mapping", "value", text)
		return map[string]interface{}{}
	}
	return m
}

// NormalizeRecord rewrites every custom-attributes field of a raw record
// JSON document in place, returning the updated document. Paths whose parent
// object is absent are left untouched.
func (n AttributeNormalizer) NormalizeRecord(recordJSON string) string {
	for _, path := range customAttributePaths {
		value := gjson.Get(recordJSON, path)
		if !value.Exists() {
			continue
		}
		updated, err := sjson.Set(recordJSON, path, n.Normalize(value.Value()))
		if err != nil {
			n.logger().Debug("failed to rewrite custom attributes", "path", path, "error", err)
			continue
		}
		recordJSON = updated
	}
	return recordJSON
}

func (n AttributeNormalizer) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

// CanonicalAttributeKeys re-cases the keys of a normalized attribute mapping
// per the configured mode ("snake" or "camel"). Any other mode returns the
// mapping unchanged.
func CanonicalAttributeKeys(attributes map[string]interface{}, mode string) map[string]interface{} {
	var recase func(string) string
	switch mode {
	case "snake":
		recase = strcase.ToSnake
	case "camel":
		recase = strcase.ToLowerCamel
	default:
		return attributes
	}
	result := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		result[recase(k)] = v
	}
	return result
}
