// internal/enquiry/repository.go
package enquiry

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(e *Enquiry) error {
	return r.DB.Create(e).Error
}

func (r *Repository) FindByID(id uint) (*Enquiry, error) {
	var e Enquiry
	err := r.DB.
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) ListAll(status string) ([]Enquiry, error) {
	var list []Enquiry
	q := r.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// HasOpenWithPhone reports whether an unclosed enquiry already carries
// this phone number.
func (r *Repository) HasOpenWithPhone(phone string) (bool, error) {
	var count int64
	err := r.DB.Model(&Enquiry{}).
		Where("phone = ? AND status NOT IN ?", phone, []string{StatusConverted, StatusClosed}).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) UpdateStatus(id uint, status string) error {
	res := r.DB.Model(&Enquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(e *Enquiry) error {
	return r.DB.Delete(e).Error
}

func (r *Repository) AddNote(n *Note) error {
	return r.DB.Create(n).Error
}

func (r *Repository) ListNotes(enquiryID uint) ([]Note, error) {
	var notes []Note
	err := r.DB.
		Where("enquiry_id = ?", enquiryID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}
