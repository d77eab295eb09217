package sync

import (
	"strings"
	"testing"
)

func testSyncContext(config Config) *SyncContext {
	return NewSyncContext(config, discardLogger(), false)
}

func TestNewRecordMapper_SupportedStreams(t *testing.T) {
	sctx := testSyncContext(Config{})
	for stream, endpoint := range map[string]string{
		"products": "products",
		"prices":   "prices",
		"clients":  "customers",
	} {
		mapper, err := NewRecordMapper(stream, sctx)
		if err != nil {
			t.Fatal(err)
		}
		if mapper.Endpoint() != endpoint {
			t.Errorf("Expected endpoint %s for stream %s but have: %s", endpoint, stream, mapper.Endpoint())
		}
	}
}

func TestNewRecordMapper_UnsupportedStream(t *testing.T) {
	_, err := NewRecordMapper("orders", testSyncContext(Config{}))
	if err == nil {
		t.Fatal("Expected error for unsupported stream")
	}
	if !strings.Contains(err.Error(), "products, prices, clients") {
		t.Errorf("Expected supported streams listed but have: %v", err)
	}
}

func TestProductsMapper(t *testing.T) {
	mapper := &ProductsMapper{SyncContext: testSyncContext(Config{})}
	req, err := mapper.MapRecord(ParseSource(`{"code": "P1", "name": "Widget", "sku": "W-1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Endpoint != "products" || req.ResourceID != "P1" {
		t.Errorf("Expected products request for P1 but have: %+v", req)
	}
	payload := req.Payload.(ProductData)
	if payload.Code == nil || *payload.Code != "P1" {
		t.Errorf("Expected code P1 but have: %v", payload.Code)
	}
	if payload.Maker != nil {
		t.Errorf("Expected nil maker but have: %v", *payload.Maker)
	}
	if !payload.Active {
		t.Error("Expected active to default to true")
	}
}

func TestProductsMapper_ActiveFalsePreserved(t *testing.T) {
	mapper := &ProductsMapper{SyncContext: testSyncContext(Config{})}
	req, err := mapper.MapRecord(ParseSource(`{"code": "P2", "active": false}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Payload.(ProductData).Active {
		t.Error("Expected active false preserved")
	}
}

func TestPricesMapper(t *testing.T) {
	mapper := &PricesMapper{SyncContext: testSyncContext(Config{})}
	record := `{"product_code": "P1", "price_table_id": 7, "price": 10.5, "custom_attributes": {"tier": "gold"}}`
	req, err := mapper.MapRecord(ParseSource(record))
	if err != nil {
		t.Fatal(err)
	}
	if req.ResourceID != "P1" {
		t.Errorf("Expected resource identity P1 but have: %s", req.ResourceID)
	}
	payload := req.Payload.(PriceData)
	if payload.Price == nil || *payload.Price != "10.5" {
		t.Errorf("Expected price stringified but have: %v", payload.Price)
	}
	if payload.MaxAllowedDiscount != nil {
		t.Errorf("Expected nil max_allowed_discount but have: %v", *payload.MaxAllowedDiscount)
	}
	if payload.DiscountType != "percentage" {
		t.Errorf("Expected percentage discount type default but have: %s", payload.DiscountType)
	}
	if payload.PriceTableID != float64(7) {
		t.Errorf("Expected price table id passthrough but have: %v", payload.PriceTableID)
	}
	if payload.CustomAttributes["tier"] != "gold" {
		t.Errorf("Expected custom attributes mapped but have: %v", payload.CustomAttributes)
	}
}

func TestCustomersMapper(t *testing.T) {
	mapper := &CustomersMapper{SyncContext: testSyncContext(Config{})}
	record := `{
		"code": "C1",
		"name": "Acme",
		"billing_address": {"street": "Av. Paulista", "city": "Sao Paulo", "custom_attributes": {"dock": "2"}},
		"custom_attributes": {"segment": "retail"}
	}`
	req, err := mapper.MapRecord(ParseSource(record))
	if err != nil {
		t.Fatal(err)
	}
	if req.Endpoint != "customers" || req.ResourceID != "C1" {
		t.Errorf("Expected customers request for C1 but have: %+v", req)
	}
	payload := req.Payload.(CustomerData)
	if payload.BillingAddress.Street == nil || *payload.BillingAddress.Street != "Av. Paulista" {
		t.Errorf("Expected billing street mapped but have: %v", payload.BillingAddress.Street)
	}
	if payload.BillingAddress.CustomAttributes["dock"] != "2" {
		t.Errorf("Expected billing custom attributes mapped but have: %v", payload.BillingAddress.CustomAttributes)
	}
	if payload.ShippingAddress.Street != nil {
		t.Errorf("Expected empty shipping address but have: %v", *payload.ShippingAddress.Street)
	}
	if len(payload.ShippingAddress.CustomAttributes) != 0 {
		t.Errorf("Expected empty shipping custom attributes but have: %v", payload.ShippingAddress.CustomAttributes)
	}
	if len(payload.SalespersonIDs) != 0 {
		t.Errorf("Expected empty salesperson ids but have: %v", payload.SalespersonIDs)
	}
	if payload.CustomAttributes["segment"] != "retail" {
		t.Errorf("Expected customer custom attributes mapped but have: %v", payload.CustomAttributes)
	}
}

func TestCustomersMapper_CountryFormat(t *testing.T) {
	config := Config{API: APISettings{CountryFormat: "alpha2"}}
	mapper := &CustomersMapper{SyncContext: testSyncContext(config)}
	record := `{"code": "C2", "billing_address": {"country": "Brazil"}, "shipping_address": {"country": "not-a-country"}}`
	req, err := mapper.MapRecord(ParseSource(record))
	if err != nil {
		t.Fatal(err)
	}
	payload := req.Payload.(CustomerData)
	if payload.BillingAddress.Country == nil || *payload.BillingAddress.Country != "BR" {
		t.Errorf("Expected alpha2 country but have: %v", payload.BillingAddress.Country)
	}
	if payload.ShippingAddress.Country == nil || *payload.ShippingAddress.Country != "not-a-country" {
		t.Errorf("Expected unresolvable country passthrough but have: %v", payload.ShippingAddress.Country)
	}
}

func TestCustomersMapper_AttributeKeyCase(t *testing.T) {
	config := Config{API: APISettings{AttributeKeyCase: "snake"}}
	mapper := &CustomersMapper{SyncContext: testSyncContext(config)}
	req, err := mapper.MapRecord(ParseSource(`{"code": "C3", "custom_attributes": {"shirtSize": "L"}}`))
	if err != nil {
		t.Fatal(err)
	}
	payload := req.Payload.(CustomerData)
	if payload.CustomAttributes["shirt_size"] != "L" {
		t.Errorf("Expected snake cased attribute keys but have: %v", payload.CustomAttributes)
	}
}
