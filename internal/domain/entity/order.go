package entity

type ShippingCost struct {
	Cost     int64  `json:"cost"` // minor units
	Currency string `json:"currency"`
}

type ShippingProfile struct {
	VariantIDs      []int        `json:"variant_ids"`
	Countries       []string     `json:"countries"`
	FirstItem       ShippingCost `json:"first_item"`
	AdditionalItems ShippingCost `json:"additional_items"`
}

type ShippingTable struct {
	HandlingTime struct {
		Value int    `json:"value"`
		Unit  string `json:"unit"`
	} `json:"handling_time"`
	Profiles []ShippingProfile `json:"profiles"`
}

// Quote amounts are major units formatted with two decimals.
type Quote struct {
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Subtotal  string   `json:"subtotal"`
	Shipping  string   `json:"shipping"`
	Total     string   `json:"total"`
	Warnings  []string `json:"warnings,omitempty"`
}

type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,len=2"`
}

type CustomerInfo struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type Mockup struct {
	ShopProductID string      `json:"shop_product_id"`
	UploadID      string      `json:"upload_id"`
	Images        []string    `json:"images"`
	Resolution    *Resolution `json:"resolution"`
	ImageURL      string      `json:"image_url"`
}

type CheckoutResult struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	Total     string `json:"total"`
	Status    string `json:"status"`
}
