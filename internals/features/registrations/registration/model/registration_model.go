package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
)

// RegistrationModel merepresentasikan tabel registrations.
//
// Satu tabel untuk registrasi individu dan tim, dibedakan lewat
// JenisRegistrasi. Untuk registrasi tim, UserID adalah kapten dan TeamID
// terisi; TeamID nullable-unique menjaga satu tim satu registrasi.
type RegistrationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_user_per_competition_reg" json:"user_id"`
	CompetitionID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_user_per_competition_reg;index" json:"competition_id"`
	TeamID          *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_team_registration" json:"team_id"`
	JenisRegistrasi string     `gorm:"size:20;not null" json:"jenis_registrasi"` // individual | team

	Status string `gorm:"size:20;not null;default:pending" json:"status"` // pending | approved | rejected | cancelled

	// Harga terkunci saat registrasi dibuat. Imutabel: tidak pernah
	// dihitung ulang walau window early bird berubah status.
	HargaTerkunci int `gorm:"not null" json:"harga_terkunci"`

	// Submission (tergantung jenis lomba)
	FileSubmission  *string `gorm:"size:255" json:"file_submission"`
	GoogleDriveLink *string `gorm:"size:255" json:"google_drive_link"`

	TanggalRegistrasi time.Time  `gorm:"not null" json:"tanggal_registrasi"`
	TanggalApproval   *time.Time `json:"tanggal_approval"`

	Payment *paymentModel.PaymentModel `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RegistrationModel) TableName() string { return "registrations" }

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.TanggalRegistrasi.IsZero() {
		m.TanggalRegistrasi = time.Now()
	}
	return nil
}

func (m *RegistrationModel) IsPending() bool  { return m.Status == constants.RegStatusPending }
func (m *RegistrationModel) IsApproved() bool { return m.Status == constants.RegStatusApproved }

// IsTeamRegistration membedakan dua varian registrasi pada tabel yang sama.
func (m *RegistrationModel) IsTeamRegistration() bool {
	return m.JenisRegistrasi == constants.KategoriTeam
}

// PaymentDeadline: batas upload bukti pembayaran, 24 jam sejak registrasi.
func (m *RegistrationModel) PaymentDeadline() time.Time {
	return m.TanggalRegistrasi.Add(constants.PaymentWindow)
}

// IsPaymentOverdue: registrasi pending yang melewati batas 24 jam.
func (m *RegistrationModel) IsPaymentOverdue(now time.Time) bool {
	return m.IsPending() && now.After(m.PaymentDeadline())
}
