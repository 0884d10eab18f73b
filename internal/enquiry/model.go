// internal/enquiry/model.go
package enquiry

import "gorm.io/gorm"

// Enquiry statuses.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusConverted = "Converted"
	StatusClosed    = "Closed"
)

// Enquiry is a prospect captured from the public enquiry form or over
// the counter.
type Enquiry struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255" json:"email"`
	Phone    string `gorm:"size:20;not null;index" json:"phone"`
	CourseID *uint  `gorm:"index" json:"courseId,omitempty"`
	Message  string `gorm:"type:text" json:"message"`
	Status   string `gorm:"size:20;not null;default:'New'" json:"status"`

	Notes []Note `gorm:"foreignKey:EnquiryID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
}

// Note is a follow-up comment an admin leaves on an enquiry.
type Note struct {
	gorm.Model
	EnquiryID uint   `gorm:"not null;index" json:"enquiryId"`
	Author    string `gorm:"size:255" json:"author"`
	Text      string `gorm:"type:text;not null" json:"text"`
}
