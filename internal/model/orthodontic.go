package model

import (
	"time"

	"github.com/google/uuid"
)

// OrthodonticEntry is one installment in a patient's orthodontic payment schedule.
type OrthodonticEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	UpperSize string    `db:"upper_size" json:"upperSize"`
	LowerSize string    `db:"lower_size" json:"lowerSize"`
	AmountPaid float64  `db:"amount_paid" json:"amountPaid"`
	Currency  Currency  `db:"currency" json:"currency"`
	Date      string    `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type OrthodonticEntryRequest struct {
	UpperSize  string   `json:"upperSize" binding:"required"`
	LowerSize  string   `json:"lowerSize" binding:"required"`
	AmountPaid float64  `json:"amountPaid" binding:"required,min=0"`
	Currency   Currency `json:"currency" binding:"required,currency"`
	Date       string   `json:"date" binding:"required,datetime=2006-01-02"`
}
