// internal/payment/dto.go
package payment

import (
	"time"

	"github.com/SkylineComputers/api-institute/internal/fees"
)

// DTO for POST /admissions/{id}/payments (admin direct entry).
type RecordPaymentDTO struct {
	Amount        int64      `json:"amount" validate:"required,gt=0"`
	Method        string     `json:"method" validate:"required"`
	TransactionID string     `json:"transactionId"`
	PaidAt        *time.Time `json:"paidAt"` // defaults to now
}

// DTO for POST /admissions/{id}/payments/manual (student self-report).
type ManualPaymentDTO struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	TransactionID string `json:"transactionId" validate:"required"`
}

// DTO for PUT /payments/{pid} (admin correction).
type PaymentUpdateDTO struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Method        string `json:"method" validate:"required"`
	TransactionID string `json:"transactionId"`
}

// PaymentResult is the mutation response: the affected row plus the
// recomputed fee summary of the owning admission. Warning is set when
// the paid total exceeds the net fee (allowed, but worth flagging).
type PaymentResult struct {
	Payment    *Payment      `json:"payment"`
	FeeSummary *fees.Summary `json:"feeSummary,omitempty"`
	Warning    string        `json:"warning,omitempty"`
}
