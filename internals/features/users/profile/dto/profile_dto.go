package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	profileModel "lombaku_backend/internals/features/users/profile/model"
)

// SaveProfileRequest: semua field opsional, yang nil tidak mengubah nilai
// tersimpan (partial update).
type SaveProfileRequest struct {
	NamaLengkap *string `json:"nama_lengkap" validate:"omitempty,min=3,max=100"`
	Sekolah     *string `json:"sekolah" validate:"omitempty,min=3,max=100"`
	Kelas       *int    `json:"kelas" validate:"omitempty,min=1,max=12"`
	NISN        *string `json:"nisn" validate:"omitempty,numeric,len=10"`
	Whatsapp    *string `json:"whatsapp" validate:"omitempty,min=9,max=20"`
	Instagram   *string `json:"instagram" validate:"omitempty,max=50"`
	Twitter     *string `json:"twitter" validate:"omitempty,max=50"`
}

func (r *SaveProfileRequest) Sanitize() {
	trim := func(p **string) {
		if *p == nil {
			return
		}
		v := strings.TrimSpace(**p)
		if v == "" {
			*p = nil
			return
		}
		*p = &v
	}
	trim(&r.NamaLengkap)
	trim(&r.Sekolah)
	trim(&r.NISN)
	trim(&r.Instagram)
	trim(&r.Twitter)
	trim(&r.Whatsapp)
	if r.Whatsapp != nil {
		normalized := NormalizePhone(*r.Whatsapp)
		r.Whatsapp = &normalized
	}
}

// NormalizePhone menyeragamkan nomor lokal 08xxx menjadi format +628xxx.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	switch {
	case strings.HasPrefix(s, "+"):
		return s
	case strings.HasPrefix(s, "62"):
		return "+" + s
	case strings.HasPrefix(s, "0"):
		return "+62" + s[1:]
	default:
		return s
	}
}

/* =======================
   Response
======================= */

type ProfileResponse struct {
	UserID               uuid.UUID `json:"user_id"`
	NamaLengkap          *string   `json:"nama_lengkap"`
	Sekolah              *string   `json:"sekolah"`
	Kelas                *int      `json:"kelas"`
	NISN                 *string   `json:"nisn"`
	Whatsapp             *string   `json:"whatsapp"`
	Instagram            *string   `json:"instagram"`
	Twitter              *string   `json:"twitter"`
	FotoKartuPelajar     *string   `json:"foto_kartu_pelajar"`
	ScreenshotTwibbon    *string   `json:"screenshot_twibbon"`
	IsVerified           bool      `json:"is_verified"`
	VerificationProgress int       `json:"verification_progress"`
	MissingFields        []string  `json:"missing_fields"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func ToProfileResponse(p *profileModel.UserProfileModel) ProfileResponse {
	return ProfileResponse{
		UserID:               p.UserID,
		NamaLengkap:          p.NamaLengkap,
		Sekolah:              p.Sekolah,
		Kelas:                p.Kelas,
		NISN:                 p.NISN,
		Whatsapp:             p.Whatsapp,
		Instagram:            p.Instagram,
		Twitter:              p.Twitter,
		FotoKartuPelajar:     p.FotoKartuPelajar,
		ScreenshotTwibbon:    p.ScreenshotTwibbon,
		IsVerified:           p.IsVerified,
		VerificationProgress: p.VerificationProgress,
		MissingFields:        p.MissingFields(),
		UpdatedAt:            p.UpdatedAt,
	}
}
