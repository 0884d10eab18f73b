// internal/admission/dto.go
package admission

import "github.com/SkylineComputers/api-institute/internal/fees"

type CreateAdmissionDTO struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"required"`
	CourseID          uint   `json:"courseId" validate:"required"`
	Discount          int64  `json:"discount" validate:"gte=0"`
	PaymentPlan       string `json:"paymentPlan" validate:"omitempty,oneof=Full Installment"`
	TotalInstallments int    `json:"totalInstallments" validate:"omitempty,gte=2,lte=4"`
}

type UpdateAdmissionDTO struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	Phone             string `json:"phone" validate:"required"`
	PaymentPlan       string `json:"paymentPlan" validate:"required,oneof=Full Installment"`
	TotalInstallments int    `json:"totalInstallments" validate:"omitempty,gte=2,lte=4"`
}

type DiscountDTO struct {
	Discount int64 `json:"discount" validate:"gte=0"`
}

// AdmissionView is an admission plus its derived money view. FeeNote is
// set to "fee data unavailable" instead of fabricating a zero summary
// when neither the course nor the snapshot resolves.
type AdmissionView struct {
	Admission
	FeeSummary *fees.Summary `json:"feeSummary,omitempty"`
	FeeNote    string        `json:"feeNote,omitempty"`
}

// InstallmentView is the payment-page view of an admission's plan.
type InstallmentView struct {
	PaymentPlan  string             `json:"paymentPlan"`
	Installments []fees.Installment `json:"installments"`
	NextDue      *fees.Installment  `json:"nextDue,omitempty"`
}

// Overview aggregates fee state across every admission for the
// dashboard.
type Overview struct {
	TotalStudents  int   `json:"totalStudents"`
	FullyPaid      int   `json:"fullyPaid"`
	PartiallyPaid  int   `json:"partiallyPaid"`
	Pending        int   `json:"pending"`
	TotalFeesAll   int64 `json:"totalFeesAll"`
	TotalCollected int64 `json:"totalCollected"`
	TotalDue       int64 `json:"totalDue"`
	FeeDataMissing int   `json:"feeDataMissing,omitempty"`
}
