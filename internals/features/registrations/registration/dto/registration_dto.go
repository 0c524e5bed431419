package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
)

type RegisterIndividualRequest struct {
	CompetitionID   uuid.UUID `json:"competition_id" form:"competition_id" validate:"required"`
	GoogleDriveLink *string   `json:"google_drive_link" form:"google_drive_link" validate:"omitempty,url"`
}

func (r *RegisterIndividualRequest) Sanitize() {
	if r.GoogleDriveLink != nil {
		trimmed := strings.TrimSpace(*r.GoogleDriveLink)
		if trimmed == "" {
			r.GoogleDriveLink = nil
		} else {
			r.GoogleDriveLink = &trimmed
		}
	}
}

/* =======================
   Response
======================= */

type PaymentSummary struct {
	ID              uuid.UUID  `json:"id"`
	Jumlah          int        `json:"jumlah"`
	Status          string     `json:"status"`
	BuktiPembayaran *string    `json:"bukti_pembayaran"`
	TanggalUpload   *time.Time `json:"tanggal_upload"`
}

type RegistrationResponse struct {
	ID                uuid.UUID       `json:"id"`
	CompetitionID     uuid.UUID       `json:"competition_id"`
	TeamID            *uuid.UUID      `json:"team_id,omitempty"`
	JenisRegistrasi   string          `json:"jenis_registrasi"`
	Status            string          `json:"status"`
	HargaTerkunci     int             `json:"harga_terkunci"`
	FileSubmission    *string         `json:"file_submission,omitempty"`
	GoogleDriveLink   *string         `json:"google_drive_link,omitempty"`
	TanggalRegistrasi time.Time       `json:"tanggal_registrasi"`
	BatasPembayaran   time.Time       `json:"batas_pembayaran"`
	TanggalApproval   *time.Time      `json:"tanggal_approval,omitempty"`
	Payment           *PaymentSummary `json:"payment,omitempty"`
}

func ToRegistrationResponse(m *registrationModel.RegistrationModel) RegistrationResponse {
	resp := RegistrationResponse{
		ID:                m.ID,
		CompetitionID:     m.CompetitionID,
		TeamID:            m.TeamID,
		JenisRegistrasi:   m.JenisRegistrasi,
		Status:            m.Status,
		HargaTerkunci:     m.HargaTerkunci,
		FileSubmission:    m.FileSubmission,
		GoogleDriveLink:   m.GoogleDriveLink,
		TanggalRegistrasi: m.TanggalRegistrasi,
		BatasPembayaran:   m.PaymentDeadline(),
		TanggalApproval:   m.TanggalApproval,
	}
	if m.Payment != nil {
		resp.Payment = &PaymentSummary{
			ID:              m.Payment.ID,
			Jumlah:          m.Payment.Jumlah,
			Status:          m.Payment.Status,
			BuktiPembayaran: m.Payment.BuktiPembayaran,
			TanggalUpload:   m.Payment.TanggalUpload,
		}
	}
	return resp
}
