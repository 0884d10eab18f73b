// internal/course/model.go
package course

import "gorm.io/gorm"

// Course is a catalogue entry. Fees is the gross list price in whole
// rupees; admissions snapshot it at creation so deleting a course never
// loses fee data.
type Course struct {
	gorm.Model
	Name           string `gorm:"size:255;not null" json:"name"`
	Code           string `gorm:"size:50;uniqueIndex" json:"code"`
	Fees           int64  `gorm:"not null" json:"fees"`
	DurationMonths int    `gorm:"not null;default:0" json:"durationMonths"`
	Active         bool   `gorm:"not null;default:true" json:"active"`
}
