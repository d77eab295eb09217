package sync

// ProductsMapper maps product records to the products collection.
type ProductsMapper struct {
	*SyncContext
}

func (m *ProductsMapper) Endpoint() string { return "products" }

func (m *ProductsMapper) MapRecord(source Source) (SharpiRequest, error) {
	payload := ProductData{
		Code:        source.StringPtrForPath("code"),
		Name:        source.StringPtrForPath("name"),
		Maker:       source.StringPtrForPath("maker"),
		SKU:         source.StringPtrForPath("sku"),
		Barcode:     source.StringPtrForPath("barcode"),
		NCM:         source.StringPtrForPath("ncm"),
		Description: source.StringPtrForPath("description"),
		Observation: source.StringPtrForPath("observation"),
		Line:        source.StringPtrForPath("line"),
		Active:      source.BoolOrForPath("active", true),
	}
	return SharpiRequest{
		Endpoint:   m.Endpoint(),
		ResourceID: source.StringOrForPath("code", ""),
		Payload:    payload,
	}, nil
}
