package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/SkylineComputers/api-institute/internal/admission"
	"github.com/SkylineComputers/api-institute/internal/auth"
	"github.com/SkylineComputers/api-institute/internal/course"
	"github.com/SkylineComputers/api-institute/internal/enquiry"
	"github.com/SkylineComputers/api-institute/internal/payment"
	"github.com/SkylineComputers/api-institute/internal/user"
	"github.com/SkylineComputers/api-institute/internal/utils"
	"github.com/SkylineComputers/api-institute/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}

	// AutoMigrate for every model
	if err := database.AutoMigrate(
		&user.User{},
		&course.Course{},
		&enquiry.Enquiry{},
		&enquiry.Note{},
		&admission.Admission{},
		&payment.Payment{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	userRepo := user.NewRepository(database)
	seedAdmin(userRepo)

	// Handlers
	userHandler := user.NewHandler(userRepo)
	courseHandler := course.NewHandler(course.NewRepository(database))
	enquiryHandler := enquiry.NewHandler(enquiry.NewRepository(database))
	admissionHandler := admission.NewHandler(database)
	paymentHandler := payment.NewHandler(payment.NewRepository(database))

	// Router
	r := mux.NewRouter()

	// Public routes: marketing site forms and student self-service
	r.HandleFunc("/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/courses/active", courseHandler.ListActive).Methods("GET")
	r.HandleFunc("/enquiries", enquiryHandler.Create).Methods("POST")
	r.HandleFunc("/admissions/apply", admissionHandler.Apply).Methods("POST")
	r.HandleFunc("/admissions/{id}/payments/manual", paymentHandler.SubmitManual).Methods("POST")
	r.HandleFunc("/students/{studentId}/fee-summary", admissionHandler.StudentFeeSummary).Methods("GET")
	r.HandleFunc("/students/{studentId}/installments", admissionHandler.StudentInstallments).Methods("GET")

	// Authenticated (any staff account)
	staff := r.NewRoute().Subrouter()
	staff.Use(auth.Middleware)
	staff.HandleFunc("/users/password", userHandler.ChangePassword).Methods("PUT")

	// Admin back office
	admin := r.NewRoute().Subrouter()
	admin.Use(auth.Middleware, auth.RequireAdmin)

	// User routes
	admin.HandleFunc("/users", userHandler.Create).Methods("POST")
	admin.HandleFunc("/users", userHandler.List).Methods("GET")
	admin.HandleFunc("/users/{id}", userHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/users/{id}/reset-password", userHandler.ResetPassword).Methods("POST")

	// Course routes
	admin.HandleFunc("/courses", courseHandler.Create).Methods("POST")
	admin.HandleFunc("/courses", courseHandler.List).Methods("GET")
	admin.HandleFunc("/courses/{id}", courseHandler.Get).Methods("GET")
	admin.HandleFunc("/courses/{id}", courseHandler.Update).Methods("PUT")
	admin.HandleFunc("/courses/{id}", courseHandler.Delete).Methods("DELETE")

	// Enquiry routes
	admin.HandleFunc("/enquiries", enquiryHandler.List).Methods("GET")
	admin.HandleFunc("/enquiries/{id}", enquiryHandler.Get).Methods("GET")
	admin.HandleFunc("/enquiries/{id}/status", enquiryHandler.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/enquiries/{id}", enquiryHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/enquiries/{id}/notes", enquiryHandler.AddNote).Methods("POST")
	admin.HandleFunc("/enquiries/{id}/notes", enquiryHandler.ListNotes).Methods("GET")

	// Admission routes
	admin.HandleFunc("/admissions", admissionHandler.Create).Methods("POST")
	admin.HandleFunc("/admissions", admissionHandler.List).Methods("GET")
	admin.HandleFunc("/admissions/{id}", admissionHandler.Get).Methods("GET")
	admin.HandleFunc("/admissions/{id}", admissionHandler.Update).Methods("PUT")
	admin.HandleFunc("/admissions/{id}", admissionHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/admissions/{id}/approve", admissionHandler.Approve).Methods("PUT")
	admin.HandleFunc("/admissions/{id}/discount", admissionHandler.ApplyDiscount).Methods("PUT")
	admin.HandleFunc("/admissions/{id}/fee-summary", admissionHandler.FeeSummary).Methods("GET")
	admin.HandleFunc("/admissions/{id}/installments", admissionHandler.Installments).Methods("GET")

	// Payment routes
	admin.HandleFunc("/admissions/{id}/payments", paymentHandler.RecordForAdmission).Methods("POST")
	admin.HandleFunc("/admissions/{id}/payments", paymentHandler.ListForAdmission).Methods("GET")
	admin.HandleFunc("/payments/pending", paymentHandler.ListPending).Methods("GET")
	admin.HandleFunc("/payments/{pid}/approve", paymentHandler.Approve).Methods("PUT")
	admin.HandleFunc("/payments/{pid}/reject", paymentHandler.Reject).Methods("PUT")
	admin.HandleFunc("/payments/{pid}", paymentHandler.Update).Methods("PUT")
	admin.HandleFunc("/payments/{pid}", paymentHandler.Delete).Methods("DELETE")

	// Dashboard
	admin.HandleFunc("/fees/overview", admissionHandler.FeeOverview).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Println("Server running on http://localhost:" + port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}

// seedAdmin creates the first admin account from the environment so a
// fresh install is reachable.
func seedAdmin(repo *user.Repository) {
	count, err := repo.Count()
	if err != nil || count > 0 {
		return
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("could not seed admin: %v", err)
		return
	}
	u := &user.User{Name: "Administrator", Email: email, PasswordHash: hash, IsAdmin: true}
	if err := repo.Create(u); err != nil {
		log.Printf("could not seed admin: %v", err)
	}
}
