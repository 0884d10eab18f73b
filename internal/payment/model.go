// internal/payment/model.go
package payment

import (
	"errors"
	"time"

	"github.com/SkylineComputers/api-institute/internal/fees"
)

// Payment methods accepted at the counter or self-reported by students.
const (
	MethodCash         = "Cash"
	MethodUPI          = "UPI"
	MethodBankTransfer = "Bank Transfer"
	MethodCheque       = "Cheque"
	MethodManual       = "Manual"
	MethodOther        = "Other"
)

var validMethods = map[string]bool{
	MethodCash:         true,
	MethodUPI:          true,
	MethodBankTransfer: true,
	MethodCheque:       true,
	MethodManual:       true,
	MethodOther:        true,
}

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool { return validMethods[m] }

var (
	ErrInvalidStateTransition = errors.New("payment is not awaiting approval")
	ErrDuplicateSubmission    = errors.New("a payment with this transaction reference is already recorded for this admission")
)

// Payment is one row of an admission's payment ledger. Amounts are
// whole rupees. TransactionID is free text: UTR formats vary by bank
// and UPI app, so it is required non-empty for manual claims but never
// format-checked.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AdmissionID   uint       `gorm:"not null;index" json:"admissionId"`
	Amount        int64      `gorm:"not null" json:"amount"`
	Method        string     `gorm:"size:50;not null;default:'Cash'" json:"method"`
	TransactionID string     `gorm:"size:255" json:"transactionId,omitempty"`
	ReceiptNumber string     `gorm:"size:64" json:"receiptNumber,omitempty"`
	Status        string     `gorm:"size:50;not null;default:'created';index" json:"status"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CanTransition reports whether a payment row may move between the two
// lifecycle statuses. "paid" is reachable only by direct admin entry
// (created) or by approval (pending_approval); a paid row never goes
// back.
func CanTransition(from, to string) bool {
	switch from {
	case fees.StatusCreated:
		return to == fees.StatusPendingApproval || to == fees.StatusPaid
	case fees.StatusPendingApproval:
		return to == fees.StatusPaid || to == fees.StatusFailed
	}
	return false
}

// ToLedger projects payment rows into the calculator's ledger view.
func ToLedger(payments []Payment) []fees.LedgerEntry {
	out := make([]fees.LedgerEntry, 0, len(payments))
	for _, p := range payments {
		out = append(out, fees.LedgerEntry{Amount: p.Amount, Status: p.Status})
	}
	return out
}
