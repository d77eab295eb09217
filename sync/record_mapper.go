package sync

import (
	"fmt"
)

// SupportedStreams are the input stream names this target accepts, in the
// order they are reported in errors.
var SupportedStreams = []string{"products", "prices", "clients"}

// RecordMapper maps one input record to a Sharpi upsert request.
// Implementations exist per stream type.
type RecordMapper interface {
	Endpoint() string
	MapRecord(source Source) (SharpiRequest, error)
}

// NewRecordMapper returns the mapper for the given stream name.
// Note the "clients" stream maps to the customers collection.
func NewRecordMapper(stream string, sctx *SyncContext) (RecordMapper, error) {
	switch stream {
	case "products":
		return &ProductsMapper{SyncContext: sctx}, nil
	case "prices":
		return &PricesMapper{SyncContext: sctx}, nil
	case "clients":
		return &CustomersMapper{SyncContext: sctx}, nil
	}
	return nil, fmt.Errorf("unsupported stream: %s (supported streams are: %s)", stream, joinStreams())
}

func joinStreams() string {
	result := ""
	for i, s := range SupportedStreams {
		if i > 0 {
			result += ", "
		}
		result += s
	}
	return result
}

// attributesForPath reads an already-normalized custom attributes mapping
// from the record, applying the configured key casing. Anything other than
// a mapping degrades to an empty mapping.
func attributesForPath(source Source, path string, keyCase string) map[string]interface{} {
	value, exists := source.ValueForPath(path)
	if !exists {
		return map[string]interface{}{}
	}
	m, ok := value.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return CanonicalAttributeKeys(m, keyCase)
}
