package sync

// PricesMapper maps price records to the prices collection.
type PricesMapper struct {
	*SyncContext
}

func (m *PricesMapper) Endpoint() string { return "prices" }

func (m *PricesMapper) MapRecord(source Source) (SharpiRequest, error) {
	priceTableID, _ := source.ValueForPath("price_table_id")
	payload := PriceData{
		ProductCode:  source.StringPtrForPath("product_code"),
		PriceTableID: priceTableID,
		// the API expects decimals as strings
		Price:              source.StringPtrForPath("price"),
		MaxAllowedDiscount: source.StringPtrForPath("max_allowed_discount"),
		DiscountType:       source.StringOrForPath("discount_type", "percentage"),
		Active:             source.BoolOrForPath("active", true),
		CustomAttributes:   attributesForPath(source, "custom_attributes", m.Config.API.AttributeKeyCase),
	}
	return SharpiRequest{
		Endpoint:   m.Endpoint(),
		ResourceID: source.StringOrForPath("product_code", ""),
		Payload:    payload,
	}, nil
}
