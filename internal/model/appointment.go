package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment keeps date and time-of-day as separate columns; the due
// predicate is defined on that split, not on a single timestamp.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctorId"`
	PatientID uuid.UUID `db:"patient_id" json:"patientId"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	Notified  bool      `db:"notified" json:"notified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctorId" binding:"required"`
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string    `json:"time" binding:"required,datetime=15:04:05"`
}

type UpdateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctorId" binding:"required"`
	PatientID uuid.UUID `json:"patientId" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string    `json:"time" binding:"required,datetime=15:04:05"`
}

// Reminder is an appointment joined with the names needed for display.
// It is a read-only projection, never stored.
type Reminder struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctorId"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Notified    bool      `db:"notified" json:"notified"`
	DoctorName  string    `db:"doctor_name" json:"doctorName"`
	PatientName string    `db:"patient_name" json:"patientName"`
	Problem     string    `db:"problem" json:"problem"`
}
