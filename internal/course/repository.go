// internal/course/repository.go
package course

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Course) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Course, error) {
	var c Course
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]Course, error) {
	var courses []Course
	err := r.DB.Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *Repository) ListActive() ([]Course, error) {
	var courses []Course
	err := r.DB.Where("active = ?", true).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *Repository) Update(c *Course) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *Course) error {
	return r.DB.Delete(c).Error
}
