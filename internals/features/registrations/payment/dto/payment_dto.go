package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lombaku_backend/internals/constants"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
)

type UploadProofRequest struct {
	CatatanUser *string `json:"catatan_user" form:"catatan_user" validate:"omitempty,max=500"`
}

func (r *UploadProofRequest) Sanitize() {
	if r.CatatanUser != nil {
		trimmed := strings.TrimSpace(*r.CatatanUser)
		if trimmed == "" {
			r.CatatanUser = nil
		} else {
			r.CatatanUser = &trimmed
		}
	}
}

type RejectPaymentRequest struct {
	CatatanAdmin string `json:"catatan_admin" validate:"required,max=500"`
}

func (r *RejectPaymentRequest) Sanitize() {
	r.CatatanAdmin = strings.TrimSpace(r.CatatanAdmin)
}

/* =======================
   Response
======================= */

type PaymentResponse struct {
	ID              uuid.UUID  `json:"id"`
	RegistrationID  uuid.UUID  `json:"registration_id"`
	Jumlah          int        `json:"jumlah"`
	Status          string     `json:"status"`
	BuktiPembayaran *string    `json:"bukti_pembayaran"`
	CatatanUser     *string    `json:"catatan_user,omitempty"`
	CatatanAdmin    *string    `json:"catatan_admin,omitempty"`
	TanggalUpload   *time.Time `json:"tanggal_upload"`
	TanggalApproval *time.Time `json:"tanggal_approval"`
	BatasPembayaran time.Time  `json:"batas_pembayaran"`
}

func ToPaymentResponse(m *paymentModel.PaymentModel, registeredAt time.Time) PaymentResponse {
	return PaymentResponse{
		ID:              m.ID,
		RegistrationID:  m.RegistrationID,
		Jumlah:          m.Jumlah,
		Status:          m.Status,
		BuktiPembayaran: m.BuktiPembayaran,
		CatatanUser:     m.CatatanUser,
		CatatanAdmin:    m.CatatanAdmin,
		TanggalUpload:   m.TanggalUpload,
		TanggalApproval: m.TanggalApproval,
		BatasPembayaran: registeredAt.Add(constants.PaymentWindow),
	}
}

// SnapLinkResponse: token & redirect URL dari Midtrans Snap.
type SnapLinkResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}
