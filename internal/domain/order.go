package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "PENDING"
	PaymentStatePaid    PaymentState = "PAID"
)

// LineItem is one product entry within an order. Price and name are
// snapshots captured from the product at order creation time; all cost
// calculations use these snapshots, not live product prices.
type LineItem struct {
	ProductID      int32  `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int32  `json:"quantity"`
	RentalDays     int32  `json:"rental_days"`
}

// SubtotalCents is unit price per day times quantity times rental days.
func (li LineItem) SubtotalCents() int64 {
	return li.UnitPriceCents * int64(li.Quantity) * int64(li.RentalDays)
}

type RentalOrder struct {
	ID            int32       `json:"id"`
	CustomerID    int32       `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	LineItems     []LineItem  `json:"line_items"`
	Status        OrderStatus `json:"status"`
	TotalCents    int64       `json:"total_cents"`

	DeliveryAddress string `json:"delivery_address"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Notes           string `json:"notes"`

	// CODPayment excludes the order from the installment-payment
	// requirement at the presentation layer; the schedule is still
	// computed and stored for record keeping.
	CODPayment bool `json:"cod_payment"`

	PartialPaymentCents int64        `json:"partial_payment_cents"`
	PartialPaymentState PaymentState `json:"partial_payment_state"`
	PartialPaymentDate  *time.Time   `json:"partial_payment_date,omitempty"`
	FinalPaymentCents   int64        `json:"final_payment_cents"`
	FinalPaymentState   PaymentState `json:"final_payment_state"`
	FinalPaymentDate    *time.Time   `json:"final_payment_date,omitempty"`

	// Transport is present only when the customer requested delivery.
	Transport *TransportNegotiation `json:"transport,omitempty"`

	// StockReleased guards against double-release across cancel,
	// CANCELLED transition and administrative delete.
	StockReleased bool `json:"stock_released"`

	Version   int32     `json:"version"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// SubtotalCents is the sum over line items, excluding any transport fee.
func (o *RentalOrder) SubtotalCents() int64 {
	var sum int64
	for _, li := range o.LineItems {
		sum += li.SubtotalCents()
	}
	return sum
}

// RecomputeTotal re-derives the order total from line items plus the
// accepted transport fee, if any. The accepted fee is included exactly once.
func (o *RentalOrder) RecomputeTotal() {
	total := o.SubtotalCents()
	if o.Transport != nil && o.Transport.State == NegotiationStateAccepted {
		total += o.Transport.AcceptedFeeCents
	}
	o.TotalCents = total
}
