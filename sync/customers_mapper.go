package sync

import (
	"github.com/biter777/countries"
)

// CustomersMapper maps records from the "clients" stream to the customers
// collection.
type CustomersMapper struct {
	*SyncContext
}

func (m *CustomersMapper) Endpoint() string { return "customers" }

func (m *CustomersMapper) MapRecord(source Source) (SharpiRequest, error) {
	defaultPriceListID, _ := source.ValueForPath("default_price_list_id")
	payload := CustomerData{
		Code:               source.StringPtrForPath("code"),
		Name:               source.StringPtrForPath("name"),
		LegalName:          source.StringPtrForPath("legal_name"),
		Email:              source.StringPtrForPath("email"),
		BillingAddress:     m.mapAddress(source, "billing_address"),
		ShippingAddress:    m.mapAddress(source, "shipping_address"),
		TaxID:              source.StringPtrForPath("tax_id"),
		Active:             source.BoolOrForPath("active", true),
		DefaultPriceListID: defaultPriceListID,
		SalespersonIDs:     source.SliceForPath("salesperson_ids"),
		CustomAttributes:   attributesForPath(source, "custom_attributes", m.Config.API.AttributeKeyCase),
	}
	return SharpiRequest{
		Endpoint:   m.Endpoint(),
		ResourceID: source.StringOrForPath("code", ""),
		Payload:    payload,
	}, nil
}

func (m *CustomersMapper) mapAddress(source Source, path string) AddressData {
	return AddressData{
		Street:           source.StringPtrForPath(path + ".street"),
		City:             source.StringPtrForPath(path + ".city"),
		State:            source.StringPtrForPath(path + ".state"),
		Zip:              source.StringPtrForPath(path + ".zip"),
		Country:          m.canonicalCountry(source.StringPtrForPath(path + ".country")),
		FullAddress:      source.StringPtrForPath(path + ".full_address"),
		CustomAttributes: attributesForPath(source, path+".custom_attributes", m.Config.API.AttributeKeyCase),
	}
}

// canonicalCountry rewrites a country value per api.countryFormat.
// Values the countries package cannot resolve pass through unchanged.
func (m *CustomersMapper) canonicalCountry(value *string) *string {
	if value == nil || m.Config.API.CountryFormat == "" {
		return value
	}
	c := countries.ByName(*value) // will match on Alpha-2 / Alpha-3 / Name
	if c == countries.Unknown {
		return value
	}
	var s string
	switch m.Config.API.CountryFormat {
	case "alpha2":
		s = c.Alpha2()
	case "name":
		s = c.String() // returns Country Name
	default:
		return value
	}
	return &s
}
