// internal/admission/repository.go
package admission

import (
	"github.com/SkylineComputers/api-institute/internal/payment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates data access for admissions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Admission) error {
	return r.DB.Create(a).Error
}

func (r *Repository) FindByID(id uint) (*Admission, error) {
	var a Admission
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIDWithPayments preloads the ledger, newest-first.
func (r *Repository) FindByIDWithPayments(id uint) (*Admission, error) {
	var a Admission
	err := r.DB.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) FindByStudentID(studentID string) (*Admission, error) {
	var a Admission
	err := r.DB.Where("student_id = ?", studentID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAllWithPayments returns every admission with its ledger, newest
// admissions first.
func (r *Repository) ListAllWithPayments() ([]Admission, error) {
	var list []Admission
	err := r.DB.
		Preload("Payments").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *Repository) Update(a *Admission) error {
	return r.DB.Save(a).Error
}

// UpdateDiscount persists a new discount under a row lock so it cannot
// interleave with a concurrent ledger write for the same admission.
func (r *Repository) UpdateDiscount(id uint, discount int64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var a Admission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, id).Error; err != nil {
			return err
		}
		return tx.Model(&a).Update("discount", discount).Error
	})
}

// SetApproved flips the admin approval flag.
func (r *Repository) SetApproved(id uint, approved bool) error {
	res := r.DB.Model(&Admission{}).Where("id = ?", id).Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithPayments removes an admission and its whole ledger in one
// transaction. Explicit admin delete is the only path here.
func (r *Repository) DeleteWithPayments(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var a Admission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, id).Error; err != nil {
			return err
		}
		if err := tx.Where("admission_id = ?", id).
			Delete(&payment.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}
