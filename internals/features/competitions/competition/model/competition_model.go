package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
)

// CompetitionModel merepresentasikan tabel competitions beserta konfigurasi
// harga early bird dan jadwalnya.
type CompetitionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NamaKompetisi string    `gorm:"size:100;not null" json:"nama_kompetisi"`
	Deskripsi     *string   `gorm:"type:text" json:"deskripsi"`

	// Kategori & jenis
	Kategori string `gorm:"size:50;not null" json:"kategori"` // individual | team
	Jenis    string `gorm:"size:50;not null" json:"jenis"`    // academic, creative, performance, basketball, esports

	// Harga (rupiah)
	HargaEarlyBird int `gorm:"not null" json:"harga_early_bird"`
	HargaReguler   int `gorm:"not null" json:"harga_reguler"`

	// Jadwal
	TanggalMulaiEarlyBird time.Time `gorm:"not null" json:"tanggal_mulai_early_bird"`
	TanggalAkhirEarlyBird time.Time `gorm:"not null" json:"tanggal_akhir_early_bird"`
	DeadlineRegistrasi    time.Time `gorm:"not null" json:"deadline_registrasi"`
	TanggalKompetisi      time.Time `gorm:"not null" json:"tanggal_kompetisi"`

	// Eligibility kelas
	MinKelas int `gorm:"not null;default:7" json:"min_kelas"`
	MaxKelas int `gorm:"not null;default:9" json:"max_kelas"`

	// Batas anggota tim (khusus kategori team)
	MinAnggota *int `json:"min_anggota"`
	MaxAnggota *int `json:"max_anggota"`

	// Aturan submission untuk lomba akademik
	AllowedFileTypes pq.StringArray `gorm:"type:text[]" json:"allowed_file_types"`
	MaxFileSizeMB    int            `gorm:"not null;default:10" json:"max_file_size_mb"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CompetitionModel) TableName() string { return "competitions" }

func (m *CompetitionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

/* =======================
   Pricing engine
======================= */

// ValidateSchedule memeriksa urutan jadwal dan urutan harga.
// Mengembalikan daftar pelanggaran; kosong berarti konfigurasi sehat.
func (m *CompetitionModel) ValidateSchedule() []string {
	var errs []string
	if !m.TanggalMulaiEarlyBird.Before(m.TanggalAkhirEarlyBird) {
		errs = append(errs, "Tanggal mulai early bird harus sebelum tanggal akhir")
	}
	if !m.TanggalAkhirEarlyBird.Before(m.DeadlineRegistrasi) {
		errs = append(errs, "Tanggal akhir early bird harus sebelum deadline registrasi")
	}
	if !m.DeadlineRegistrasi.Before(m.TanggalKompetisi) {
		errs = append(errs, "Deadline registrasi harus sebelum tanggal kompetisi")
	}
	if m.HargaEarlyBird >= m.HargaReguler {
		errs = append(errs, "Harga early bird harus lebih murah dari harga reguler")
	}
	return errs
}

// IsEarlyBirdActive: batas window inklusif di kedua ujung.
// Konfigurasi yang tidak valid dianggap tidak pernah aktif — pricing menolak
// menghitung diskon dari jadwal yang terbalik.
func (m *CompetitionModel) IsEarlyBirdActive(now time.Time) bool {
	if len(m.ValidateSchedule()) > 0 {
		return false
	}
	return !now.Before(m.TanggalMulaiEarlyBird) && !now.After(m.TanggalAkhirEarlyBird)
}

// CurrentPrice mengembalikan harga yang berlaku pada instant tertentu.
func (m *CompetitionModel) CurrentPrice(now time.Time) int {
	if m.IsEarlyBirdActive(now) {
		return m.HargaEarlyBird
	}
	return m.HargaReguler
}

// LockedPriceAt: harga yang harus dikunci untuk registrasi pada instant t.
// Nilai ini disimpan imutabel di Registration dan tidak pernah dihitung ulang.
func (m *CompetitionModel) LockedPriceAt(t time.Time) int {
	return m.CurrentPrice(t)
}

// EarlyBirdSavings: selisih harga reguler dan early bird dari konfigurasi,
// terlepas dari window sedang aktif atau tidak.
func (m *CompetitionModel) EarlyBirdSavings() int {
	return m.HargaReguler - m.HargaEarlyBird
}

// EarlyBirdDaysLeft: sisa hari early bird (truncate ke hari penuh).
// 0 jika tidak sedang aktif, termasuk saat window baru akan mulai.
func (m *CompetitionModel) EarlyBirdDaysLeft(now time.Time) int {
	if !m.IsEarlyBirdActive(now) {
		return 0
	}
	days := int(m.TanggalAkhirEarlyBird.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsRegistrationOpen: deadline inklusif.
func (m *CompetitionModel) IsRegistrationOpen(now time.Time) bool {
	return !now.After(m.DeadlineRegistrasi)
}

// RegistrationDaysLeft: sisa hari sebelum deadline registrasi, 0 jika lewat.
func (m *CompetitionModel) RegistrationDaysLeft(now time.Time) int {
	if !m.IsRegistrationOpen(now) {
		return 0
	}
	days := int(m.DeadlineRegistrasi.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// PricingInfo: ringkasan harga untuk UI.
type PricingInfo struct {
	CurrentPrice         int       `json:"current_price"`
	EarlyBirdPrice       int       `json:"early_bird_price"`
	RegularPrice         int       `json:"regular_price"`
	IsEarlyBirdActive    bool      `json:"is_early_bird_active"`
	EarlyBirdSavings     int       `json:"early_bird_savings"`
	EarlyBirdDaysLeft    int       `json:"early_bird_days_left"`
	EarlyBirdStart       time.Time `json:"early_bird_start"`
	EarlyBirdEnd         time.Time `json:"early_bird_end"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	RegistrationDaysLeft int       `json:"registration_days_left"`
	IsRegistrationOpen   bool      `json:"is_registration_open"`
}

func (m *CompetitionModel) PricingSummary(now time.Time) PricingInfo {
	return PricingInfo{
		CurrentPrice:         m.CurrentPrice(now),
		EarlyBirdPrice:       m.HargaEarlyBird,
		RegularPrice:         m.HargaReguler,
		IsEarlyBirdActive:    m.IsEarlyBirdActive(now),
		EarlyBirdSavings:     m.EarlyBirdSavings(),
		EarlyBirdDaysLeft:    m.EarlyBirdDaysLeft(now),
		EarlyBirdStart:       m.TanggalMulaiEarlyBird,
		EarlyBirdEnd:         m.TanggalAkhirEarlyBird,
		RegistrationDeadline: m.DeadlineRegistrasi,
		RegistrationDaysLeft: m.RegistrationDaysLeft(now),
		IsRegistrationOpen:   m.IsRegistrationOpen(now),
	}
}

/* =======================
   Kategori & submission
======================= */

func (m *CompetitionModel) IsTeamCategory() bool {
	return m.Kategori == constants.KategoriTeam
}

// ValidateTeamSize: ukuran tim dalam rentang [min_anggota, max_anggota].
func (m *CompetitionModel) ValidateTeamSize(memberCount int) bool {
	if !m.IsTeamCategory() {
		return true
	}
	if m.MinAnggota == nil || m.MaxAnggota == nil {
		return true
	}
	return *m.MinAnggota <= memberCount && memberCount <= *m.MaxAnggota
}

// RequiresFileUpload: lomba akademik mengumpulkan file submission.
func (m *CompetitionModel) RequiresFileUpload() bool {
	return m.Jenis == constants.JenisAcademic
}

// RequiresDriveLink: lomba kreatif/performa mengumpulkan link Google Drive.
func (m *CompetitionModel) RequiresDriveLink() bool {
	return m.Jenis == constants.JenisCreative || m.Jenis == constants.JenisPerformance
}

// IsFileAllowed memeriksa ekstensi file submission terhadap daftar yang
// dikonfigurasi (fallback ke default akademik).
func (m *CompetitionModel) IsFileAllowed(filename string) bool {
	if !m.RequiresFileUpload() {
		return true
	}
	if filename == "" || !strings.Contains(filename, ".") {
		return false
	}
	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])

	allowed := []string(m.AllowedFileTypes)
	if len(allowed) == 0 {
		allowed = constants.DefaultAllowedFileTypes
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), ext) {
			return true
		}
	}
	return false
}
