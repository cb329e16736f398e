package model

import (
	"time"

	"github.com/google/uuid"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyIQD Currency = "IQD"
)

type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	FullName         string     `db:"full_name" json:"fullName"`
	Phone            string     `db:"phone" json:"phone"`
	Problem          string     `db:"problem" json:"problem"`
	AssignedDoctorID *uuid.UUID `db:"assigned_doctor_id" json:"assignedDoctorId"`
	TotalCost        float64    `db:"total_cost" json:"totalCost"`
	RemainingAmount  float64    `db:"remaining_amount" json:"remainingAmount"`
	Currency         Currency   `db:"currency" json:"currency"`
	Note             *string    `db:"note" json:"note,omitempty"`
	ImplantBrand     *string    `db:"implant_brand" json:"implantBrand,omitempty"`
	ImplantFormer    *string    `db:"implant_former" json:"implantFormer,omitempty"`
	ImplantCrownType *string    `db:"implant_crown_type" json:"implantCrownType,omitempty"`
	DoctorName       *string    `db:"doctor_name" json:"doctorName,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

type CreatePatientRequest struct {
	FullName         string     `json:"fullName" binding:"required"`
	Phone            string     `json:"phone" binding:"required"`
	Problem          string     `json:"problem" binding:"required"`
	AssignedDoctorID *uuid.UUID `json:"assignedDoctorId"`
	TotalCost        float64    `json:"totalCost" binding:"min=0"`
	RemainingAmount  float64    `json:"remainingAmount" binding:"min=0"`
	Currency         Currency   `json:"currency" binding:"required,currency"`
	ImplantBrand     *string    `json:"implantBrand"`
	ImplantFormer    *string    `json:"implantFormer"`
	ImplantCrownType *string    `json:"implantCrownType"`
}

type UpdatePatientRequest struct {
	FullName         string     `json:"fullName" binding:"required"`
	Phone            string     `json:"phone" binding:"required"`
	Problem          string     `json:"problem" binding:"required"`
	AssignedDoctorID *uuid.UUID `json:"assignedDoctorId"`
	TotalCost        float64    `json:"totalCost" binding:"min=0"`
	RemainingAmount  float64    `json:"remainingAmount" binding:"min=0"`
	Currency         Currency   `json:"currency" binding:"required,currency"`
	ImplantBrand     *string    `json:"implantBrand"`
	ImplantFormer    *string    `json:"implantFormer"`
	ImplantCrownType *string    `json:"implantCrownType"`
}

// ImplantInfo is the subset of patient fields edited from the implant form.
type ImplantInfo struct {
	ImplantBrand     *string `db:"implant_brand" json:"implantBrand"`
	ImplantFormer    *string `db:"implant_former" json:"implantFormer"`
	ImplantCrownType *string `db:"implant_crown_type" json:"implantCrownType"`
}

type PatientNote struct {
	Note *string `db:"note" json:"note"`
}
