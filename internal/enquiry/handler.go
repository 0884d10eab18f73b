// internal/enquiry/handler.go
package enquiry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SkylineComputers/api-institute/internal/notification"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

var validate = validator.New()

type createEnquiryDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"required"`
	CourseID *uint  `json:"courseId"`
	Message  string `json:"message"`
}

type noteDTO struct {
	Author string `json:"author"`
	Text   string `json:"text" validate:"required"`
}

var allowedStatuses = map[string]bool{
	StatusNew:       true,
	StatusContacted: true,
	StatusConverted: true,
	StatusClosed:    true,
}

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /enquiries  (public form)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createEnquiryDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A repeat phone number is worth a nudge but never blocks intake.
	if dup, err := h.Repo.HasOpenWithPhone(in.Phone); err == nil && dup {
		go notification.SendDuplicateEnquiryAlert(in.Phone)
	}

	e := &Enquiry{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		CourseID: in.CourseID,
		Message:  in.Message,
		Status:   StatusNew,
	}
	if err := h.Repo.Create(e); err != nil {
		http.Error(w, "could not create enquiry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e)
}

// GET /enquiries?status=New
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListAll(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "could not list enquiries", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(list)
}

// GET /enquiries/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid enquiry id", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "enquiry not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

// PUT /enquiries/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid enquiry id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !allowedStatuses[payload.Status] {
		http.Error(w, "invalid status. Use 'New', 'Contacted', 'Converted' or 'Closed'.", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatus(uint(id), payload.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "enquiry not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update enquiry status", http.StatusInternalServerError)
		return
	}

	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "could not load updated enquiry", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

// DELETE /enquiries/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid enquiry id", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "enquiry not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(e); err != nil {
		http.Error(w, "could not delete enquiry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /enquiries/{id}/notes
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid enquiry id", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		http.Error(w, "enquiry not found", http.StatusNotFound)
		return
	}

	var in noteDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := &Note{EnquiryID: uint(id), Author: in.Author, Text: in.Text}
	if err := h.Repo.AddNote(n); err != nil {
		http.Error(w, "could not add note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

// GET /enquiries/{id}/notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid enquiry id", http.StatusBadRequest)
		return
	}
	notes, err := h.Repo.ListNotes(uint(id))
	if err != nil {
		http.Error(w, "could not list notes", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(notes)
}
