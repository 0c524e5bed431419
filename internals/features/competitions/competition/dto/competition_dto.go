package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lombaku_backend/internals/constants"
	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
)

type CreateCompetitionRequest struct {
	NamaKompetisi string  `json:"nama_kompetisi" validate:"required,min=3,max=100"`
	Deskripsi     *string `json:"deskripsi" validate:"omitempty,max=5000"`
	Kategori      string  `json:"kategori" validate:"required,oneof=individual team"`
	Jenis         string  `json:"jenis" validate:"required,oneof=academic creative performance basketball esports"`

	HargaEarlyBird int `json:"harga_early_bird" validate:"required,min=0"`
	HargaReguler   int `json:"harga_reguler" validate:"required,min=0"`

	TanggalMulaiEarlyBird time.Time `json:"tanggal_mulai_early_bird" validate:"required"`
	TanggalAkhirEarlyBird time.Time `json:"tanggal_akhir_early_bird" validate:"required"`
	DeadlineRegistrasi    time.Time `json:"deadline_registrasi" validate:"required"`
	TanggalKompetisi      time.Time `json:"tanggal_kompetisi" validate:"required"`

	MinKelas int `json:"min_kelas" validate:"required,min=1,max=12"`
	MaxKelas int `json:"max_kelas" validate:"required,min=1,max=12,gtefield=MinKelas"`

	MinAnggota *int `json:"min_anggota" validate:"omitempty,min=1"`
	MaxAnggota *int `json:"max_anggota" validate:"omitempty,min=1"`

	AllowedFileTypes []string `json:"allowed_file_types" validate:"omitempty,dive,alphanum"`
	MaxFileSizeMB    int      `json:"max_file_size_mb" validate:"omitempty,min=1,max=50"`
}

func (r *CreateCompetitionRequest) Sanitize() {
	r.NamaKompetisi = strings.TrimSpace(r.NamaKompetisi)
	r.Kategori = strings.ToLower(strings.TrimSpace(r.Kategori))
	r.Jenis = strings.ToLower(strings.TrimSpace(r.Jenis))
	for i := range r.AllowedFileTypes {
		r.AllowedFileTypes[i] = strings.ToLower(strings.TrimSpace(r.AllowedFileTypes[i]))
	}
}

// ToModel membangun model siap simpan. Default diisi di sini, bukan di DB,
// supaya ValidateSchedule bisa dijalankan sebelum insert.
func (r *CreateCompetitionRequest) ToModel() *competitionModel.CompetitionModel {
	m := &competitionModel.CompetitionModel{
		NamaKompetisi:         r.NamaKompetisi,
		Deskripsi:             r.Deskripsi,
		Kategori:              r.Kategori,
		Jenis:                 r.Jenis,
		HargaEarlyBird:        r.HargaEarlyBird,
		HargaReguler:          r.HargaReguler,
		TanggalMulaiEarlyBird: r.TanggalMulaiEarlyBird,
		TanggalAkhirEarlyBird: r.TanggalAkhirEarlyBird,
		DeadlineRegistrasi:    r.DeadlineRegistrasi,
		TanggalKompetisi:      r.TanggalKompetisi,
		MinKelas:              r.MinKelas,
		MaxKelas:              r.MaxKelas,
		MinAnggota:            r.MinAnggota,
		MaxAnggota:            r.MaxAnggota,
		AllowedFileTypes:      pq.StringArray(r.AllowedFileTypes),
		MaxFileSizeMB:         r.MaxFileSizeMB,
	}
	if m.MaxFileSizeMB == 0 {
		m.MaxFileSizeMB = constants.DefaultMaxFileSizeMB
	}
	if len(m.AllowedFileTypes) == 0 && m.Jenis == constants.JenisAcademic {
		m.AllowedFileTypes = pq.StringArray(constants.DefaultAllowedFileTypes)
	}
	return m
}

/* =======================
   Response
======================= */

type CompetitionResponse struct {
	ID            uuid.UUID `json:"id"`
	NamaKompetisi string    `json:"nama_kompetisi"`
	Deskripsi     *string   `json:"deskripsi,omitempty"`
	Kategori      string    `json:"kategori"`
	Jenis         string    `json:"jenis"`

	Pricing competitionModel.PricingInfo `json:"pricing"`

	TanggalKompetisi time.Time `json:"tanggal_kompetisi"`
	MinKelas         int       `json:"min_kelas"`
	MaxKelas         int       `json:"max_kelas"`
	MinAnggota       *int      `json:"min_anggota,omitempty"`
	MaxAnggota       *int      `json:"max_anggota,omitempty"`

	RequiresFileUpload bool     `json:"requires_file_upload"`
	RequiresDriveLink  bool     `json:"requires_drive_link"`
	AllowedFileTypes   []string `json:"allowed_file_types,omitempty"`
	MaxFileSizeMB      int      `json:"max_file_size_mb"`

	// Diisi hanya untuk request ber-token
	IsEligible        *bool   `json:"is_eligible,omitempty"`
	EligibilityReason *string `json:"eligibility_reason,omitempty"`
}

func ToCompetitionResponse(m *competitionModel.CompetitionModel, now time.Time) CompetitionResponse {
	return CompetitionResponse{
		ID:                 m.ID,
		NamaKompetisi:      m.NamaKompetisi,
		Deskripsi:          m.Deskripsi,
		Kategori:           m.Kategori,
		Jenis:              m.Jenis,
		Pricing:            m.PricingSummary(now),
		TanggalKompetisi:   m.TanggalKompetisi,
		MinKelas:           m.MinKelas,
		MaxKelas:           m.MaxKelas,
		MinAnggota:         m.MinAnggota,
		MaxAnggota:         m.MaxAnggota,
		RequiresFileUpload: m.RequiresFileUpload(),
		RequiresDriveLink:  m.RequiresDriveLink(),
		AllowedFileTypes:   []string(m.AllowedFileTypes),
		MaxFileSizeMB:      m.MaxFileSizeMB,
	}
}
