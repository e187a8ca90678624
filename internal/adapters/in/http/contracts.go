package http

import "time"

// Request and response contracts of the HTTP API. Field names follow the
// camelCase convention of the JSON API.

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	ClientID   int64      `json:"clientId"`
	ClientName string     `json:"clientName"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// CreateOrderResponse returns the identifiers assigned to a new order.
type CreateOrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// UpdateOrderRequest is the body of PUT /api/v1/orders/{orderId}.
type UpdateOrderRequest struct {
	ClientName string     `json:"clientName"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/{orderId}/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangePaymentStatusRequest is the body of
// POST /api/v1/orders/{orderId}/payment-status.
type ChangePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// LockRequest identifies the user acquiring or releasing an order lock.
type LockRequest struct {
	UserID int64 `json:"userId"`
}

// AddSectionRequest is the body of POST /api/v1/orders/{orderId}/sections.
type AddSectionRequest struct {
	SectionNumber int     `json:"sectionNumber"`
	Name          string  `json:"name"`
	HeaderID      *string `json:"headerId,omitempty"`
	Description   *string `json:"description,omitempty"`
}

// AddItemRequest is the body of
// POST /api/v1/orders/{orderId}/sections/{sectionNumber}/items.
type AddItemRequest struct {
	ProductID   string                `json:"productId"`
	Quantity    float64               `json:"quantity"`
	Unit        float64               `json:"unit"`
	Coefficient float64               `json:"coefficient,omitempty"`
	Properties  []ItemPropertyRequest `json:"properties,omitempty"`
}

// ItemPropertyRequest is one property selection of an item being added.
type ItemPropertyRequest struct {
	PropertyID   string `json:"propertyId"`
	PropertyCode string `json:"propertyCode"`
	PropertyName string `json:"propertyName"`
	Value        string `json:"value"`
}

// AddItemResponse returns the identifier assigned to a new item.
type AddItemResponse struct {
	ID string `json:"id"`
}

// OrderSummary is one row of the order listing.
type OrderSummary struct {
	ID            string     `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	ClientID      int64      `json:"clientId"`
	ClientName    string     `json:"clientName"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
}

// OrderView is the full order returned by GET /api/v1/orders/{orderId}.
type OrderView struct {
	ID            string        `json:"id"`
	OrderNumber   string        `json:"orderNumber"`
	ClientID      int64         `json:"clientId"`
	ClientName    string        `json:"clientName"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"paymentStatus"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	LockedBy      *int64        `json:"lockedBy,omitempty"`
	LockedAt      *time.Time    `json:"lockedAt,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	TotalAmount   float64       `json:"totalAmount"`
	Sections      []SectionView `json:"sections"`
}

// SectionView is one section of the full order view.
type SectionView struct {
	SectionNumber int        `json:"sectionNumber"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
	Items         []ItemView `json:"items"`
}

// ItemView is one priced item of the full order view.
type ItemView struct {
	ID          string             `json:"id"`
	ProductID   string             `json:"productId"`
	ProductName string             `json:"productName"`
	Quantity    float64            `json:"quantity"`
	Unit        float64            `json:"unit"`
	Coefficient float64            `json:"coefficient"`
	BasePrice   float64            `json:"basePrice"`
	FinalPrice  float64            `json:"finalPrice"`
	TotalPrice  float64            `json:"totalPrice"`
	Properties  []ItemPropertyView `json:"properties"`
}

// ItemPropertyView is one frozen property value of an item view.
type ItemPropertyView struct {
	PropertyID   string `json:"propertyId"`
	PropertyCode string `json:"propertyCode"`
	PropertyName string `json:"propertyName"`
	Value        string `json:"value"`
}

// ModifierRequest is the body of POST /api/v1/modifiers and
// PUT /api/v1/modifiers/{modifierId}. Code and Type are ignored on update.
type ModifierRequest struct {
	Code                string     `json:"code"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Value               float64    `json:"value"`
	Priority            int        `json:"priority"`
	PropertyID          *string    `json:"propertyId,omitempty"`
	PropertyValue       *string    `json:"propertyValue,omitempty"`
	ConditionExpression *string    `json:"conditionExpression,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
}

// CreateModifierResponse returns the identifier assigned to a new modifier.
type CreateModifierResponse struct {
	ID string `json:"id"`
}

// CalculatePriceRequest is the body of POST /api/v1/pricing/calculate.
type CalculatePriceRequest struct {
	BasePrice   float64           `json:"basePrice"`
	Quantity    float64           `json:"quantity"`
	Unit        float64           `json:"unit"`
	Coefficient float64           `json:"coefficient"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// CalculateProductPriceRequest is the body of
// POST /api/v1/pricing/products/calculate.
type CalculateProductPriceRequest struct {
	ProductID   string            `json:"productId"`
	Quantity    float64           `json:"quantity"`
	Coefficient float64           `json:"coefficient,omitempty"`
	LengthMM    float64           `json:"lengthMm,omitempty"`
	WidthMM     float64           `json:"widthMm,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// AppliedModifierView describes one modifier that fired during a quote.
type AppliedModifierView struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	Delta float64 `json:"delta"`
}

// PriceQuoteView is the response of POST /api/v1/pricing/calculate.
type PriceQuoteView struct {
	BasePrice        float64               `json:"basePrice"`
	FinalPrice       float64               `json:"finalPrice"`
	TotalPrice       float64               `json:"totalPrice"`
	AppliedModifiers []AppliedModifierView `json:"appliedModifiers"`
	Breakdown        BreakdownView         `json:"breakdown"`
}

// BreakdownView exposes the running price after each calculation stage.
type BreakdownView struct {
	AfterModifiers   float64 `json:"afterModifiers"`
	AfterUnit        float64 `json:"afterUnit"`
	AfterCoefficient float64 `json:"afterCoefficient"`
	AfterQuantity    float64 `json:"afterQuantity"`
}

// ProductQuoteView is the response of POST /api/v1/pricing/products/calculate.
type ProductQuoteView struct {
	ProductID         string                `json:"productId"`
	ProductName       string                `json:"productName"`
	BasePrice         float64               `json:"basePrice"`
	UnitPrice         float64               `json:"unitPrice"`
	ModifiedUnitPrice float64               `json:"modifiedUnitPrice"`
	LengthMM          float64               `json:"lengthMm"`
	WidthMM           float64               `json:"widthMm"`
	AppliedModifiers  []AppliedModifierView `json:"appliedModifiers"`
	Subtotal          float64               `json:"subtotal"`
	FinalPrice        float64               `json:"finalPrice"`
}
