// internal/admission/model.go
package admission

import (
	"strings"

	"github.com/SkylineComputers/api-institute/internal/payment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admission is one enrollment. FinalFees is the course's gross fee
// snapshotted at creation, so fee summaries survive course deletion.
// Discount and the payment ledger both mutate independently; the fee
// summary is derived from them on every read, never stored here.
type Admission struct {
	gorm.Model
	StudentID string `gorm:"size:40;uniqueIndex" json:"studentId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:20;not null" json:"phone"`

	CourseID  uint  `gorm:"not null;index" json:"courseId"`
	FinalFees int64 `gorm:"not null" json:"finalFees"`
	Discount  int64 `gorm:"not null;default:0" json:"discount"`

	PaymentPlan       string `gorm:"size:20;not null;default:'Full'" json:"paymentPlan"`
	TotalInstallments int    `gorm:"not null;default:0" json:"totalInstallments"`
	Approved          bool   `gorm:"not null;default:false" json:"approved"`

	Payments []payment.Payment `gorm:"foreignKey:AdmissionID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// NewStudentID generates the public student identifier printed on
// receipts and ID cards.
func NewStudentID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ADM-" + raw[:10]
}
