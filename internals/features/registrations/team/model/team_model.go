package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamModel merepresentasikan tabel teams. Nama tim unik per kompetisi
// (bukan global) — dijaga oleh unique index komposit di bawah.
type TeamModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NamaTim       string    `gorm:"size:100;not null;uniqueIndex:uq_team_name_per_competition" json:"nama_tim"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_team_name_per_competition;index" json:"competition_id"`
	CaptainID     uuid.UUID `gorm:"type:uuid;not null;index" json:"captain_id"`

	Members []TeamMemberModel `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TeamModel) TableName() string { return "teams" }

func (m *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MemberCount: jumlah anggota yang sudah ter-preload.
func (m *TeamModel) MemberCount() int { return len(m.Members) }

// HasMember memeriksa keanggotaan dari relasi yang sudah ter-preload.
func (m *TeamModel) HasMember(userID uuid.UUID) bool {
	for _, mm := range m.Members {
		if mm.UserID == userID {
			return true
		}
	}
	return false
}
