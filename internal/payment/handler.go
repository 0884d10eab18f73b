// internal/payment/handler.go
package payment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SkylineComputers/api-institute/internal/fees"
	"github.com/SkylineComputers/api-institute/internal/notification"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var validate = validator.New()

/* ============================== Handler ============================== */

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// summaryFor recomputes the owning admission's fee summary from the
// ledger. Summaries are never stored; every caller gets a fresh read.
func (h *Handler) summaryFor(db *gorm.DB, admissionID uint) (*fees.Summary, error) {
	src, err := h.Repo.FeeContext(db, admissionID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := h.Repo.SumPaidByAdmissionID(db, admissionID)
	if err != nil {
		return nil, err
	}
	summary, err := fees.SummaryFromTotals(src, totalPaid)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func overpaymentWarning(s *fees.Summary) string {
	if s != nil && s.TotalPaid > s.TotalFees {
		return "paid total exceeds the net fee for this admission"
	}
	return ""
}

func writeResult(w http.ResponseWriter, status int, p *Payment, s *fees.Summary) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(PaymentResult{
		Payment:    p,
		FeeSummary: s,
		Warning:    overpaymentWarning(s),
	})
}

/* ============================== Endpoints ============================== */

// POST /admissions/{id}/payments
// Admin direct entry: the row is paid immediately and gets a receipt.
func (h *Handler) RecordForAdmission(w http.ResponseWriter, r *http.Request) {
	admissionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}

	var in RecordPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ValidMethod(in.Method) {
		http.Error(w, "invalid payment method", http.StatusBadRequest)
		return
	}

	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.LockAdmission(tx, uint(admissionID)); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "admission not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not lock admission", http.StatusInternalServerError)
		return
	}

	p := &Payment{
		AdmissionID:   uint(admissionID),
		Amount:        in.Amount,
		Method:        in.Method,
		TransactionID: strings.TrimSpace(in.TransactionID),
		ReceiptNumber: uuid.NewString(),
		Status:        fees.StatusPaid,
		PaidAt:        &paidAt,
	}
	if err := tx.Create(p).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not record payment", http.StatusInternalServerError)
		return
	}

	summary, err := h.summaryFor(tx, uint(admissionID))
	if err != nil && !errors.Is(err, fees.ErrMissingFeeReference) {
		_ = tx.Rollback()
		http.Error(w, "could not recompute fee summary", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	writeResult(w, http.StatusCreated, p, summary)
}

// POST /admissions/{id}/payments/manual
// Student self-report of a UPI/bank transfer: the claim waits for admin
// approval and does not count toward totals until then.
func (h *Handler) SubmitManual(w http.ResponseWriter, r *http.Request) {
	admissionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}

	var in ManualPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.LockAdmission(tx, uint(admissionID)); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "admission not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not lock admission", http.StatusInternalServerError)
		return
	}

	// Dedupe on (admission, transactionId): a retried submission must
	// not create a second pending claim.
	dup, err := h.Repo.HasActiveReference(tx, uint(admissionID), in.TransactionID)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not check transaction reference", http.StatusInternalServerError)
		return
	}
	if dup {
		_ = tx.Rollback()
		http.Error(w, ErrDuplicateSubmission.Error(), http.StatusConflict)
		return
	}

	p := &Payment{
		AdmissionID:   uint(admissionID),
		Amount:        in.Amount,
		Method:        MethodManual,
		TransactionID: in.TransactionID,
		Status:        fees.StatusPendingApproval,
	}
	if err := tx.Create(p).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not submit payment", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	go notification.SendManualPaymentAlert(uint(admissionID), p.Amount, p.TransactionID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PUT /payments/{pid}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolvePending(w, r, fees.StatusPaid)
}

// PUT /payments/{pid}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolvePending(w, r, fees.StatusFailed)
}

// resolvePending moves a pending_approval row to paid or failed. Any
// other starting status is an InvalidStateTransition, reported to the
// caller rather than silently ignored.
func (h *Handler) resolvePending(w http.ResponseWriter, r *http.Request, target string) {
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.FindByID(uint(pid))
	if err != nil {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	if !CanTransition(p.Status, target) {
		http.Error(w, ErrInvalidStateTransition.Error(), http.StatusConflict)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.LockAdmission(tx, p.AdmissionID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not lock admission", http.StatusInternalServerError)
		return
	}

	// Re-read under the lock; a concurrent admin may have resolved it.
	var current Payment
	if err := tx.First(&current, p.ID).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	if !CanTransition(current.Status, target) {
		_ = tx.Rollback()
		http.Error(w, ErrInvalidStateTransition.Error(), http.StatusConflict)
		return
	}

	if target == fees.StatusPaid {
		err = h.Repo.MarkPaid(tx, current.ID, uuid.NewString(), time.Now())
	} else {
		err = h.Repo.MarkFailed(tx, current.ID)
	}
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not update payment status", http.StatusInternalServerError)
		return
	}

	summary, err := h.summaryFor(tx, current.AdmissionID)
	if err != nil && !errors.Is(err, fees.ErrMissingFeeReference) {
		_ = tx.Rollback()
		http.Error(w, "could not recompute fee summary", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	updated, err := h.Repo.FindByID(current.ID)
	if err != nil {
		http.Error(w, "could not load updated payment", http.StatusInternalServerError)
		return
	}
	writeResult(w, http.StatusOK, updated, summary)
}

// PUT /payments/{pid}
// Admin correction. Editing a paid row changes derived totals on the
// next summary read; the old and new amounts are logged since no
// reversal entry exists.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(pid))
	if err != nil {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}

	var in PaymentUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ValidMethod(in.Method) {
		http.Error(w, "invalid payment method", http.StatusBadRequest)
		return
	}

	if existing.Status == fees.StatusPaid && existing.Amount != in.Amount {
		log.Printf("payment %d edited while paid: amount %d -> %d", existing.ID, existing.Amount, in.Amount)
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.LockAdmission(tx, existing.AdmissionID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not lock admission", http.StatusInternalServerError)
		return
	}

	existing.Amount = in.Amount
	existing.Method = in.Method
	existing.TransactionID = strings.TrimSpace(in.TransactionID)

	if err := h.Repo.WithDB(tx).Update(existing); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not update payment", http.StatusInternalServerError)
		return
	}

	summary, err := h.summaryFor(tx, existing.AdmissionID)
	if err != nil && !errors.Is(err, fees.ErrMissingFeeReference) {
		_ = tx.Rollback()
		http.Error(w, "could not recompute fee summary", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	writeResult(w, http.StatusOK, existing, summary)
}

// DELETE /payments/{pid}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	existing, err := h.Repo.FindByID(uint(pid))
	if err != nil {
		http.Error(w, "payment not found", http.StatusNotFound)
		return
	}
	if existing.Status == fees.StatusPaid {
		log.Printf("paid payment %d deleted (amount %d, admission %d)", existing.ID, existing.Amount, existing.AdmissionID)
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "could not start transaction", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.LockAdmission(tx, existing.AdmissionID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not lock admission", http.StatusInternalServerError)
		return
	}
	if err := h.Repo.DeleteByID(tx, existing.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not delete payment", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "could not commit transaction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /admissions/{id}/payments
func (h *Handler) ListForAdmission(w http.ResponseWriter, r *http.Request) {
	admissionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}

	payments, err := h.Repo.ListByAdmissionID(uint(admissionID))
	if err != nil {
		http.Error(w, "could not list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payments)
}

// GET /payments/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Repo.ListPendingApproval()
	if err != nil {
		http.Error(w, "could not list pending payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payments)
}
