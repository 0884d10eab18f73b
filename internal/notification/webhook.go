package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

func post(payload map[string]interface{}) {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("webhook send failed: %v", err)
		return
	}
	defer resp.Body.Close()
}

// SendManualPaymentAlert nudges the back office when a student submits
// a manual payment claim that needs verification.
func SendManualPaymentAlert(admissionID uint, amount int64, transactionID string) {
	post(map[string]interface{}{
		"message":       "Manual payment submitted and awaiting approval",
		"admissionId":   admissionID,
		"amount":        amount,
		"transactionId": transactionID,
	})
}

// SendDuplicateEnquiryAlert fires when a new enquiry reuses the phone
// number of an enquiry that is still open.
func SendDuplicateEnquiryAlert(phone string) {
	post(map[string]interface{}{
		"message": "New enquiry received with a phone number already in the pipeline",
		"phone":   phone,
	})
}
