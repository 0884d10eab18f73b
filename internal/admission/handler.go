// internal/admission/handler.go
package admission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SkylineComputers/api-institute/internal/course"
	"github.com/SkylineComputers/api-institute/internal/fees"
	"github.com/SkylineComputers/api-institute/internal/payment"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var validate = validator.New()

const feeUnavailableMsg = "fee data unavailable"

type Handler struct {
	DB      *gorm.DB
	Repo    *Repository
	Courses *course.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:      db,
		Repo:    NewRepository(db),
		Courses: course.NewRepository(db),
	}
}

/* ============================ View helpers ============================ */

// viewFor attaches the derived fee summary to one admission. The
// summary is recomputed from the loaded ledger on every call.
func viewFor(a Admission, courseFees int64) AdmissionView {
	view := AdmissionView{Admission: a}
	src := fees.FeeSource{CourseFees: courseFees, FinalFees: a.FinalFees, Discount: a.Discount}
	summary, err := fees.ComputeSummary(src, payment.ToLedger(a.Payments))
	if err != nil {
		view.FeeNote = feeUnavailableMsg
		return view
	}
	view.FeeSummary = &summary
	return view
}

// courseFeeMap loads the live fee of every surviving course.
func (h *Handler) courseFeeMap() (map[uint]int64, error) {
	courses, err := h.Courses.ListAll()
	if err != nil {
		return nil, err
	}
	m := make(map[uint]int64, len(courses))
	for _, c := range courses {
		m[c.ID] = c.Fees
	}
	return m, nil
}

func (h *Handler) summaryForAdmission(a *Admission) (*fees.Summary, error) {
	var courseFees int64
	if c, err := h.Courses.FindByID(a.CourseID); err == nil {
		courseFees = c.Fees
	}
	src := fees.FeeSource{CourseFees: courseFees, FinalFees: a.FinalFees, Discount: a.Discount}
	ledger, err := payment.NewRepository(h.DB).ListByAdmissionID(a.ID)
	if err != nil {
		return nil, err
	}
	summary, err := fees.ComputeSummary(src, payment.ToLedger(ledger))
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

/* ============================== Intake ============================== */

func (h *Handler) create(w http.ResponseWriter, r *http.Request, approved bool) {
	var in CreateAdmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.PaymentPlan == "" {
		in.PaymentPlan = fees.PlanFull
	}
	if in.PaymentPlan == fees.PlanInstallment && in.TotalInstallments == 0 {
		http.Error(w, "totalInstallments is required for an installment plan", http.StatusBadRequest)
		return
	}
	if in.PaymentPlan == fees.PlanFull {
		in.TotalInstallments = 0
	}

	c, err := h.Courses.FindByID(in.CourseID)
	if err != nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if !c.Active {
		http.Error(w, "course is not open for admission", http.StatusBadRequest)
		return
	}

	a := &Admission{
		StudentID:         NewStudentID(),
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		CourseID:          c.ID,
		FinalFees:         c.Fees,
		Discount:          in.Discount,
		PaymentPlan:       in.PaymentPlan,
		TotalInstallments: in.TotalInstallments,
		Approved:          approved,
	}
	if err := h.Repo.Create(a); err != nil {
		http.Error(w, "could not create admission", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(viewFor(*a, c.Fees))
}

// POST /admissions/apply  (public admission form; awaits approval)
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// POST /admissions  (admin entry; pre-approved)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

/* ============================ Admin CRUD ============================ */

// GET /admissions
// Every row carries its recomputed fee summary; this backs the
// admissions list and the fee manager screen.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAllWithPayments()
	if err != nil {
		http.Error(w, "could not list admissions", http.StatusInternalServerError)
		return
	}
	feeMap, err := h.courseFeeMap()
	if err != nil {
		http.Error(w, "could not load courses", http.StatusInternalServerError)
		return
	}

	views := make([]AdmissionView, 0, len(list))
	for _, a := range list {
		views = append(views, viewFor(a, feeMap[a.CourseID]))
	}
	_ = json.NewEncoder(w).Encode(views)
}

// GET /admissions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindByIDWithPayments(uint(id))
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}

	var courseFees int64
	if c, err := h.Courses.FindByID(a.CourseID); err == nil {
		courseFees = c.Fees
	}
	_ = json.NewEncoder(w).Encode(viewFor(*a, courseFees))
}

// PUT /admissions/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}

	var in UpdateAdmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if in.PaymentPlan == fees.PlanInstallment && in.TotalInstallments == 0 {
		http.Error(w, "totalInstallments is required for an installment plan", http.StatusBadRequest)
		return
	}
	if in.PaymentPlan == fees.PlanFull {
		in.TotalInstallments = 0
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.PaymentPlan = in.PaymentPlan
	existing.TotalInstallments = in.TotalInstallments

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "could not update admission", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(existing)
}

// PUT /admissions/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.SetApproved(uint(id), true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "admission not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not approve admission", http.StatusInternalServerError)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "could not load admission", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(a)
}

// PUT /admissions/{id}/discount
// Validates discount >= 0 only; a discount above the gross fee is
// accepted and zeroes the net fee downstream.
func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}

	var in DiscountDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if in.Discount < 0 {
		http.Error(w, "discount must be zero or positive", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateDiscount(uint(id), in.Discount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "admission not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not apply discount", http.StatusInternalServerError)
		return
	}

	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "could not load admission", http.StatusInternalServerError)
		return
	}
	summary, err := h.summaryForAdmission(a)
	if err != nil {
		http.Error(w, feeUnavailableMsg, http.StatusUnprocessableEntity)
		return
	}
	_ = json.NewEncoder(w).Encode(summary)
}

// DELETE /admissions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.DeleteWithPayments(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "admission not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete admission", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/* ============================ Fee reads ============================ */

// GET /admissions/{id}/fee-summary
func (h *Handler) FeeSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}
	h.writeSummary(w, a)
}

// GET /students/{studentId}/fee-summary  (student self-service)
func (h *Handler) StudentFeeSummary(w http.ResponseWriter, r *http.Request) {
	a, err := h.Repo.FindByStudentID(mux.Vars(r)["studentId"])
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}
	h.writeSummary(w, a)
}

func (h *Handler) writeSummary(w http.ResponseWriter, a *Admission) {
	summary, err := h.summaryForAdmission(a)
	if err != nil {
		if errors.Is(err, fees.ErrMissingFeeReference) {
			http.Error(w, feeUnavailableMsg, http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "could not compute fee summary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

// GET /admissions/{id}/installments
func (h *Handler) Installments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid admission id", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}
	h.writeInstallments(w, a)
}

// GET /students/{studentId}/installments  (payment page "next due")
func (h *Handler) StudentInstallments(w http.ResponseWriter, r *http.Request) {
	a, err := h.Repo.FindByStudentID(mux.Vars(r)["studentId"])
	if err != nil {
		http.Error(w, "admission not found", http.StatusNotFound)
		return
	}
	h.writeInstallments(w, a)
}

func (h *Handler) writeInstallments(w http.ResponseWriter, a *Admission) {
	summary, err := h.summaryForAdmission(a)
	if err != nil {
		if errors.Is(err, fees.ErrMissingFeeReference) {
			http.Error(w, feeUnavailableMsg, http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "could not compute fee summary", http.StatusInternalServerError)
		return
	}

	var plan []fees.Installment
	if a.PaymentPlan == fees.PlanInstallment {
		plan, err = fees.PlanInstallments(summary.TotalFees, a.TotalInstallments)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	} else {
		plan = fees.FullPlan(summary.TotalFees)
	}
	plan = fees.ResolveInstallmentStatus(plan, summary.TotalPaid)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(InstallmentView{
		PaymentPlan:  a.PaymentPlan,
		Installments: plan,
		NextDue:      fees.NextDue(plan),
	})
}

// GET /fees/overview
// Dashboard aggregate across every admission, recomputed per request.
func (h *Handler) FeeOverview(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAllWithPayments()
	if err != nil {
		http.Error(w, "could not list admissions", http.StatusInternalServerError)
		return
	}
	feeMap, err := h.courseFeeMap()
	if err != nil {
		http.Error(w, "could not load courses", http.StatusInternalServerError)
		return
	}

	var out Overview
	out.TotalStudents = len(list)
	for _, a := range list {
		src := fees.FeeSource{CourseFees: feeMap[a.CourseID], FinalFees: a.FinalFees, Discount: a.Discount}
		summary, err := fees.ComputeSummary(src, payment.ToLedger(a.Payments))
		if err != nil {
			out.FeeDataMissing++
			continue
		}
		out.TotalFeesAll += summary.TotalFees
		out.TotalCollected += summary.TotalPaid
		out.TotalDue += summary.BalanceDue
		switch summary.PaymentStatus {
		case fees.AdmissionPaid:
			out.FullyPaid++
		case fees.AdmissionPartiallyPaid:
			out.PartiallyPaid++
		default:
			out.Pending++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
