package model

import (
	"reflect"
	"testing"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func fullProfile() UserProfileModel {
	return UserProfileModel{
		NamaLengkap:       str("Budi Santoso"),
		Sekolah:           str("SMP Negeri 1 Jakarta"),
		Kelas:             num(8),
		NISN:              str("0051234567"),
		Whatsapp:          str("+628123456789"),
		Instagram:         str("@budisantoso"),
		FotoKartuPelajar:  str("https://oss.example.com/kartu.webp"),
		ScreenshotTwibbon: str("https://oss.example.com/twibbon.webp"),
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserProfileModel)
		want    int
		missing int
	}{
		{"profil lengkap", func(p *UserProfileModel) {}, 100, 0},
		{"profil kosong", func(p *UserProfileModel) { *p = UserProfileModel{} }, 0, 8},
		{"tiga dari delapan field", func(p *UserProfileModel) {
			*p = UserProfileModel{
				NamaLengkap: str("Budi"),
				Sekolah:     str("SMP 1"),
				Kelas:       num(7),
			}
		}, 37, 5}, // floor(3/8*100) = 37
		{"string spasi dihitung kosong", func(p *UserProfileModel) {
			p.NISN = str("   ")
		}, 87, 1},
		{"nil pointer dihitung kosong", func(p *UserProfileModel) {
			p.Whatsapp = nil
		}, 87, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullProfile()
			tt.mutate(&p)
			if got := p.CompletionPercentage(); got != tt.want {
				t.Errorf("CompletionPercentage() = %d, want %d", got, tt.want)
			}
			if got := len(p.MissingFields()); got != tt.missing {
				t.Errorf("len(MissingFields()) = %d, want %d", got, tt.missing)
			}
		})
	}
}

func TestCompletionIdempotent(t *testing.T) {
	p := UserProfileModel{NamaLengkap: str("Budi"), Kelas: num(9)}
	first := p.CompletionPercentage()
	second := p.CompletionPercentage()
	if first != second {
		t.Fatalf("persentase berubah tanpa mutasi: %d vs %d", first, second)
	}
	m1 := p.MissingFields()
	m2 := p.MissingFields()
	if !reflect.DeepEqual(m1, m2) {
		t.Fatalf("missing fields berubah tanpa mutasi: %v vs %v", m1, m2)
	}
}

func TestMissingFieldsCanonicalOrder(t *testing.T) {
	p := UserProfileModel{
		Sekolah:   str("SMP 1"),
		Instagram: str("@budi"),
	}
	want := []string{
		"Nama Lengkap",
		"Kelas",
		"NISN",
		"Nomor WhatsApp",
		"Foto Kartu Pelajar",
		"Screenshot Twibbon",
	}
	if got := p.MissingFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}
}

func TestIsComplete(t *testing.T) {
	p := fullProfile()
	if !p.IsComplete() {
		t.Error("profil lengkap harus complete")
	}
	p.Instagram = nil
	if p.IsComplete() {
		t.Error("profil 87% tidak boleh complete")
	}
}

func TestIsGradeEligible(t *testing.T) {
	tests := []struct {
		name     string
		kelas    *int
		min, max int
		want     bool
	}{
		{"dalam rentang", num(8), 7, 9, true},
		{"batas bawah inklusif", num(7), 7, 9, true},
		{"batas atas inklusif", num(9), 7, 9, true},
		{"di bawah rentang", num(7), 8, 9, false},
		{"di atas rentang", num(9), 7, 8, false},
		{"kelas belum diisi", nil, 7, 9, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserProfileModel{Kelas: tt.kelas}
			if got := p.IsGradeEligible(tt.min, tt.max); got != tt.want {
				t.Errorf("IsGradeEligible(%d,%d) = %v, want %v", tt.min, tt.max, got, tt.want)
			}
		})
	}
}
