package sync

import (
	"github.com/tidwall/gjson"
)

// Source wraps a parsed record and provides typed path access.
type Source struct {
	data gjson.Result
}

// ParseSource parses a raw record JSON document into a Source.
func ParseSource(json string) Source {
	return Source{data: gjson.Parse(json)}
}

func (s Source) StringForPath(path string) (string, bool) {
	result := s.data.Get(path)
	return result.String(), result.Exists() && (result.Value() != nil)
}

func (s Source) BoolForPath(path string) (bool, bool) {
	result := s.data.Get(path)
	return result.Bool(), result.Exists() && (result.Value() != nil)
}

// StringPtrForPath returns the value at path as a *string, or nil when the
// path is absent or null. Numbers are stringified, matching the upstream
// API's expectation for decimal fields.
func (s Source) StringPtrForPath(path string) *string {
	result, exists := s.StringForPath(path)
	if !exists {
		return nil
	}
	return &result
}

// ValueForPath returns the raw decoded value at path.
func (s Source) ValueForPath(path string) (interface{}, bool) {
	result := s.data.Get(path)
	return result.Value(), result.Exists() && (result.Value() != nil)
}

// BoolOrForPath returns the boolean at path, or fallback when absent or null.
func (s Source) BoolOrForPath(path string, fallback bool) bool {
	if result, exists := s.BoolForPath(path); exists {
		return result
	}
	return fallback
}

// StringOrForPath returns the string at path, or fallback when absent or null.
func (s Source) StringOrForPath(path string, fallback string) string {
	if result, exists := s.StringForPath(path); exists {
		return result
	}
	return fallback
}

// SliceForPath returns the array at path, or an empty slice when absent,
// null or not an array.
func (s Source) SliceForPath(path string) []interface{} {
	result := s.data.Get(path)
	if !result.IsArray() {
		return []interface{}{}
	}
	values := result.Array()
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v.Value())
	}
	return out
}

// HasPath reports whether path exists in the record.
func (s Source) HasPath(path string) bool {
	return s.data.Get(path).Exists()
}
