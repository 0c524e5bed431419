package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
)

// TeamMemberModel merepresentasikan tabel team_members.
//
// CompetitionID sengaja didenormalisasi dari tim induk supaya aturan
// "satu user satu tim per kompetisi" bisa dijaga oleh unique index
// uq_user_per_competition, bukan hanya oleh cek aplikasi yang rawan race.
type TeamMemberModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_per_team;index" json:"team_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_per_team;uniqueIndex:uq_user_per_competition" json:"user_id"`
	CompetitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_per_competition" json:"competition_id"`

	Posisi   string    `gorm:"size:20;not null;default:Player" json:"posisi"` // Captain | Player | Reserve
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (TeamMemberModel) TableName() string { return "team_members" }

func (m *TeamMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Posisi == "" {
		m.Posisi = constants.PosisiPlayer
	}
	return nil
}

func (m *TeamMemberModel) IsCaptain() bool { return m.Posisi == constants.PosisiCaptain }
