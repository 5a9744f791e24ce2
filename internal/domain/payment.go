package domain

import "time"

type InstallmentKind string

const (
	InstallmentPartial InstallmentKind = "PARTIAL"
	InstallmentFinal   InstallmentKind = "FINAL"
)

// Payment is an immutable record created each time an installment is paid.
// It is never updated after creation.
type Payment struct {
	ID             int32           `json:"id"`
	OrderID        int32           `json:"order_id"`
	CustomerID     int32           `json:"customer_id"`
	AmountCents    int64           `json:"amount_cents"`
	Kind           InstallmentKind `json:"kind"`
	Method         string          `json:"method"`
	Last4Digits    string          `json:"last4_digits"`
	TransactionRef string          `json:"transaction_ref"`
	PaidAt         time.Time       `json:"paid_at"`
}

// PaymentMethodDetails is what the caller supplies when paying an
// installment. Card data is handled (encrypted, validated) upstream; only
// the method label and the last four digits ever reach the engine.
type PaymentMethodDetails struct {
	Method      string `json:"method"`
	Last4Digits string `json:"last4_digits"`
}
