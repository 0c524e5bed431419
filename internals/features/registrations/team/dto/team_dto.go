package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	teamModel "lombaku_backend/internals/features/registrations/team/model"
)

type CreateTeamRequest struct {
	NamaTim       string    `json:"nama_tim" validate:"required,min=3,max=100"`
	CompetitionID uuid.UUID `json:"competition_id" validate:"required"`
}

func (r *CreateTeamRequest) Sanitize() {
	r.NamaTim = strings.TrimSpace(r.NamaTim)
}

type AddMemberRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Posisi string `json:"posisi" validate:"omitempty,oneof=Captain Player Reserve"`
}

func (r *AddMemberRequest) Sanitize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Posisi = strings.TrimSpace(r.Posisi)
}

/* =======================
   Response
======================= */

type TeamMemberResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	NamaLengkap string    `json:"nama_lengkap"`
	Sekolah     string    `json:"sekolah"`
	Posisi      string    `json:"posisi"`
	JoinedAt    time.Time `json:"joined_at"`
}

type TeamResponse struct {
	ID            uuid.UUID            `json:"id"`
	NamaTim       string               `json:"nama_tim"`
	CompetitionID uuid.UUID            `json:"competition_id"`
	CaptainID     uuid.UUID            `json:"captain_id"`
	MemberCount   int                  `json:"member_count"`
	Members       []TeamMemberResponse `json:"members,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// TeamCompletenessResponse: hasil cek kesiapan tim sebelum registrasi.
type TeamCompletenessResponse struct {
	IsComplete bool     `json:"is_complete"`
	Problems   []string `json:"problems"`
}

func ToTeamResponse(m *teamModel.TeamModel) TeamResponse {
	resp := TeamResponse{
		ID:            m.ID,
		NamaTim:       m.NamaTim,
		CompetitionID: m.CompetitionID,
		CaptainID:     m.CaptainID,
		MemberCount:   m.MemberCount(),
		CreatedAt:     m.CreatedAt,
	}
	for _, mm := range m.Members {
		resp.Members = append(resp.Members, TeamMemberResponse{
			UserID:   mm.UserID,
			Posisi:   mm.Posisi,
			JoinedAt: mm.JoinedAt,
		})
	}
	return resp
}
