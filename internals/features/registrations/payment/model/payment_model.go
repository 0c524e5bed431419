package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
)

// PaymentModel merepresentasikan tabel payments, satu-satu dengan registrasi.
type PaymentModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RegistrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payment_per_registration" json:"registration_id"`

	Jumlah int    `gorm:"not null" json:"jumlah"`
	Status string `gorm:"size:20;not null;default:pending" json:"status"` // pending | approved | rejected

	BuktiPembayaran *string `gorm:"size:255" json:"bukti_pembayaran"`
	CatatanUser     *string `gorm:"type:text" json:"catatan_user"`
	CatatanAdmin    *string `gorm:"type:text" json:"catatan_admin"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	TanggalUpload   *time.Time `json:"tanggal_upload"`
	TanggalApproval *time.Time `json:"tanggal_approval"`

	// Payload snap Midtrans (token + redirect URL) bila link pembayaran dibuat.
	GatewayPayload datatypes.JSON `json:"gateway_payload,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *PaymentModel) IsPending() bool  { return m.Status == constants.PaymentStatusPending }
func (m *PaymentModel) IsApproved() bool { return m.Status == constants.PaymentStatusApproved }

func (m *PaymentModel) HasProof() bool {
	return m.BuktiPembayaran != nil && *m.BuktiPembayaran != ""
}

// CanBeModified: bukti hanya boleh diunggah/diganti selama pembayaran masih
// pending dan belum melewati batas 24 jam sejak registrasi dibuat.
// registeredAt adalah TanggalRegistrasi milik registrasi induk.
func (m *PaymentModel) CanBeModified(registeredAt, now time.Time) bool {
	if !m.IsPending() {
		return false
	}
	return !now.After(registeredAt.Add(constants.PaymentWindow))
}
