package sync

import "errors"

// SharpiRequest is a single upsert against the Sharpi partner API,
// constructed fresh per record and discarded after the response.
type SharpiRequest struct {
	// Endpoint is the API collection ("products", "prices", "customers").
	Endpoint string
	// ResourceID identifies the existing resource for the PATCH fallback
	// when the create attempt reports a duplicate. May be empty when the
	// record carries no identity, in which case the fallback fails.
	ResourceID string
	// Payload is the JSON-serializable request body.
	Payload interface{}
}

// Validate checks that the request can be sent.
func (r SharpiRequest) Validate() error {
	if r.Endpoint == "" {
		return errors.New("no endpoint to send to")
	}
	if r.Payload == nil {
		return errors.New("no payload to send")
	}
	return nil
}

// ProductData is the products collection payload. All keys are always sent;
// absent record fields serialize as null, matching the upstream contract.
type ProductData struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Maker       *string `json:"maker"`
	SKU         *string `json:"sku"`
	Barcode     *string `json:"barcode"`
	NCM         *string `json:"ncm"`
	Description *string `json:"description"`
	Observation *string `json:"observation"`
	Line        *string `json:"line"`
	Active      bool    `json:"active"`
}

// PriceData is the prices collection payload. Price and MaxAllowedDiscount
// are stringified decimals.
type PriceData struct {
	ProductCode        *string                `json:"product_code"`
	PriceTableID       interface{}            `json:"price_table_id"`
	Price              *string                `json:"price"`
	MaxAllowedDiscount *string                `json:"max_allowed_discount"`
	DiscountType       string                 `json:"discount_type"`
	Active             bool                   `json:"active"`
	CustomAttributes   map[string]interface{} `json:"custom_attributes"`
}

// AddressData is the billing/shipping address sub-object of a customer.
type AddressData struct {
	Street           *string                `json:"street"`
	City             *string                `json:"city"`
	State            *string                `json:"state"`
	Zip              *string                `json:"zip"`
	Country          *string                `json:"country"`
	FullAddress      *string                `json:"full_address"`
	CustomAttributes map[string]interface{} `json:"custom_attributes"`
}

// CustomerData is the customers collection payload.
type CustomerData struct {
	Code               *string                `json:"code"`
	Name               *string                `json:"name"`
	LegalName          *string                `json:"legal_name"`
	Email              *string                `json:"email"`
	BillingAddress     AddressData            `json:"billing_address"`
	ShippingAddress    AddressData            `json:"shipping_address"`
	TaxID              *string                `json:"tax_id"`
	Active             bool                   `json:"active"`
	DefaultPriceListID interface{}            `json:"default_price_list_id"`
	SalespersonIDs     []interface{}          `json:"salesperson_ids"`
	CustomAttributes   map[string]interface{} `json:"custom_attributes"`
}
