// internal/payment/repository.go
package payment

import (
	"time"

	"github.com/SkylineComputers/api-institute/internal/fees"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates data access for the payment ledger.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a ledger repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB returns a copy of the repo bound to a specific *gorm.DB (e.g. a tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

/* ========================= Basic ledger CRUD ========================= */

// Create inserts one payment row.
func (r *Repository) Create(p *Payment) error {
	return r.DB.Create(p).Error
}

// FindByID fetches a single payment row.
func (r *Repository) FindByID(id uint) (*Payment, error) {
	var p Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByAdmissionID returns every ledger row of one admission,
// newest-first.
func (r *Repository) ListByAdmissionID(admissionID uint) ([]Payment, error) {
	var payments []Payment
	err := r.DB.
		Where("admission_id = ?", admissionID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	return payments, err
}

// ListPendingApproval returns the admin work queue of student-submitted
// claims, oldest-first.
func (r *Repository) ListPendingApproval() ([]Payment, error) {
	var payments []Payment
	err := r.DB.
		Where("status = ?", fees.StatusPendingApproval).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

// Update saves all fields of an existing row (Save requires the PK).
func (r *Repository) Update(p *Payment) error {
	return r.DB.Save(p).Error
}

// DeleteByID removes the row; returns gorm.ErrRecordNotFound if nothing
// was deleted.
func (r *Repository) DeleteByID(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.DB
	}
	res := db.Delete(&Payment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ===================== Aggregates and fee context ===================== */

// SumPaidByAdmissionID totals the "paid" rows of one admission. If db ==
// nil, uses r.DB; pass a tx to sum inside a transaction.
func (r *Repository) SumPaidByAdmissionID(db *gorm.DB, admissionID uint) (int64, error) {
	if db == nil {
		db = r.DB
	}
	var total int64
	err := db.Model(&Payment{}).
		Where("admission_id = ? AND status = ?", admissionID, fees.StatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// HasActiveReference reports whether the admission already carries a
// non-failed row with this transaction reference. Used to reject
// duplicate manual submissions.
func (r *Repository) HasActiveReference(db *gorm.DB, admissionID uint, transactionID string) (bool, error) {
	if db == nil {
		db = r.DB
	}
	var count int64
	err := db.Model(&Payment{}).
		Where("admission_id = ? AND transaction_id = ? AND status <> ?",
			admissionID, transactionID, fees.StatusFailed).
		Count(&count).Error
	return count > 0, err
}

type admissionFeeRow struct {
	Discount   int64
	FinalFees  int64
	CourseFees int64
}

// FeeContext loads the fee inputs of one admission, joining the course
// for its live fee (0 when the course is gone). Returns
// gorm.ErrRecordNotFound when the admission does not resolve.
func (r *Repository) FeeContext(db *gorm.DB, admissionID uint) (fees.FeeSource, error) {
	if db == nil {
		db = r.DB
	}
	var row admissionFeeRow
	err := db.Table("admissions").
		Select("admissions.discount, admissions.final_fees, COALESCE(courses.fees, 0) AS course_fees").
		Joins("LEFT JOIN courses ON courses.id = admissions.course_id AND courses.deleted_at IS NULL").
		Where("admissions.id = ? AND admissions.deleted_at IS NULL", admissionID).
		Take(&row).Error
	if err != nil {
		return fees.FeeSource{}, err
	}
	return fees.FeeSource{
		CourseFees: row.CourseFees,
		FinalFees:  row.FinalFees,
		Discount:   row.Discount,
	}, nil
}

// LockAdmission takes a row lock on the owning admission so concurrent
// ledger writes for the same admission serialize. Must run inside a tx.
func (r *Repository) LockAdmission(tx *gorm.DB, admissionID uint) error {
	var row struct{ ID uint }
	return tx.Table("admissions").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND deleted_at IS NULL", admissionID).
		Take(&row).Error
}

// MarkPaid transitions a row to "paid", stamping PaidAt and the receipt.
func (r *Repository) MarkPaid(db *gorm.DB, id uint, receiptNumber string, paidAt time.Time) error {
	if db == nil {
		db = r.DB
	}
	return db.Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         fees.StatusPaid,
			"receipt_number": receiptNumber,
			"paid_at":        &paidAt,
		}).Error
}

// MarkFailed transitions a row to "failed"; the row stays visible for
// audit but is excluded from every total.
func (r *Repository) MarkFailed(db *gorm.DB, id uint) error {
	if db == nil {
		db = r.DB
	}
	return db.Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  fees.StatusFailed,
			"paid_at": nil,
		}).Error
}
