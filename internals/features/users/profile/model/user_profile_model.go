package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfileModel merepresentasikan tabel user_profiles (satu-satu dengan users).
// verification_progress selalu konsisten dengan jumlah field wajib yang terisi;
// perhitungannya murni (CompletionPercentage), persist dilakukan service.
type UserProfileModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_user_profiles_user" json:"user_id"`

	// Data pribadi
	NamaLengkap *string `gorm:"size:100" json:"nama_lengkap"`
	Sekolah     *string `gorm:"size:100" json:"sekolah"`
	Kelas       *int    `gorm:"type:smallint" json:"kelas"` // 7, 8, atau 9
	NISN        *string `gorm:"size:20;column:nisn" json:"nisn"`

	// Kontak
	Whatsapp  *string `gorm:"size:20" json:"whatsapp"`
	Instagram *string `gorm:"size:50" json:"instagram"`
	Twitter   *string `gorm:"size:50" json:"twitter"`

	// Dokumen upload (URL OSS)
	FotoKartuPelajar  *string `gorm:"size:200" json:"foto_kartu_pelajar"`
	ScreenshotTwibbon *string `gorm:"size:200" json:"screenshot_twibbon"`

	// Status verifikasi (hanya diubah admin)
	IsVerified           bool `gorm:"not null;default:false" json:"is_verified"`
	VerificationProgress int  `gorm:"not null;default:0" json:"verification_progress"` // 0-100

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfileModel) TableName() string { return "user_profiles" }

func (p *UserProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// requiredFieldLabels: urutan kanonik 8 field wajib. Urutan ini yang dipakai
// MissingFields supaya output deterministik.
var requiredFieldLabels = []string{
	"Nama Lengkap",
	"Sekolah",
	"Kelas",
	"NISN",
	"Nomor WhatsApp",
	"Instagram",
	"Foto Kartu Pelajar",
	"Screenshot Twibbon",
}

func (p *UserProfileModel) requiredValues() []*string {
	var kelas *string
	if p.Kelas != nil {
		v := strconv.Itoa(*p.Kelas)
		kelas = &v
	}
	return []*string{
		p.NamaLengkap,
		p.Sekolah,
		kelas,
		p.NISN,
		p.Whatsapp,
		p.Instagram,
		p.FotoKartuPelajar,
		p.ScreenshotTwibbon,
	}
}

func filled(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

// CompletionPercentage menghitung persentase kelengkapan profil:
// floor(jumlah field wajib terisi / 8 * 100). Murni, tanpa side effect.
func (p *UserProfileModel) CompletionPercentage() int {
	values := p.requiredValues()
	completed := 0
	for _, v := range values {
		if filled(v) {
			completed++
		}
	}
	return completed * 100 / len(values)
}

// MissingFields mengembalikan label field wajib yang masih kosong,
// dalam urutan kanonik.
func (p *UserProfileModel) MissingFields() []string {
	values := p.requiredValues()
	missing := []string{}
	for i, v := range values {
		if !filled(v) {
			missing = append(missing, requiredFieldLabels[i])
		}
	}
	return missing
}

// IsComplete: profil lengkap berarti persis 100%.
func (p *UserProfileModel) IsComplete() bool {
	return p.CompletionPercentage() == 100
}

// IsGradeEligible memeriksa kelas user terhadap rentang kelas lomba (inklusif).
func (p *UserProfileModel) IsGradeEligible(minKelas, maxKelas int) bool {
	if p.Kelas == nil {
		return false
	}
	return minKelas <= *p.Kelas && *p.Kelas <= maxKelas
}
