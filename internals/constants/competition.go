package constants

import "time"

// Kategori kompetisi
const (
	KategoriIndividual = "individual"
	KategoriTeam       = "team"
)

// Jenis kompetisi
const (
	JenisAcademic    = "academic"
	JenisCreative    = "creative"
	JenisPerformance = "performance"
	JenisBasketball  = "basketball"
	JenisEsports     = "esports"
)

var AllowedKategori = []string{KategoriIndividual, KategoriTeam}

var AllowedJenis = []string{
	JenisAcademic,
	JenisCreative,
	JenisPerformance,
	JenisBasketball,
	JenisEsports,
}

// Posisi anggota tim
const (
	PosisiCaptain = "Captain"
	PosisiPlayer  = "Player"
	PosisiReserve = "Reserve"
)

var AllowedPosisi = []string{PosisiCaptain, PosisiPlayer, PosisiReserve}

// Status registrasi
const (
	RegStatusPending   = "pending"
	RegStatusApproved  = "approved"
	RegStatusRejected  = "rejected"
	RegStatusCancelled = "cancelled"
)

// Status pembayaran
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// Default ekstensi file submission untuk lomba akademik
var DefaultAllowedFileTypes = []string{"pdf", "doc", "docx"}

// Ekstensi gambar yang diterima untuk dokumen profil & bukti pembayaran
var AllowedImageExtensions = []string{"jpg", "jpeg", "png", "webp"}

const DefaultMaxFileSizeMB = 10

// Batas waktu upload bukti pembayaran sejak registrasi dibuat
const PaymentWindow = 24 * time.Hour
