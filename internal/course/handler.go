// internal/course/handler.go
package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

type courseRequest struct {
	Name           string `json:"name" validate:"required"`
	Code           string `json:"code" validate:"required"`
	Fees           int64  `json:"fees" validate:"required,gt=0"`
	DurationMonths int    `json:"durationMonths" validate:"gte=0"`
	Active         *bool  `json:"active"`
}

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// POST /courses
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in courseRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	c := &Course{
		Name:           in.Name,
		Code:           in.Code,
		Fees:           in.Fees,
		DurationMonths: in.DurationMonths,
		Active:         active,
	}
	if err := h.Repo.Create(c); err != nil {
		http.Error(w, "could not create course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /courses
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "could not list courses", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(courses)
}

// GET /courses/active  (public: the marketing site course list)
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Repo.ListActive()
	if err != nil {
		http.Error(w, "could not list courses", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(courses)
}

// GET /courses/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /courses/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}
	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}

	var in courseRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing.Name = in.Name
	existing.Code = in.Code
	existing.Fees = in.Fees
	existing.DurationMonths = in.DurationMonths
	if in.Active != nil {
		existing.Active = *in.Active
	}

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "could not update course", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(existing)
}

// DELETE /courses/{id}
// Existing admissions keep working off their fee snapshot.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid course id", http.StatusBadRequest)
		return
	}
	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "course not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(existing); err != nil {
		http.Error(w, "could not delete course", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
