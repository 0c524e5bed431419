package service

import (
	"strings"
	"testing"
	"time"

	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	"lombaku_backend/internals/constants"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func completeProfile(kelas int) *profileModel.UserProfileModel {
	return &profileModel.UserProfileModel{
		NamaLengkap:       str("Siti Rahma"),
		Sekolah:           str("SMP Negeri 2 Bandung"),
		Kelas:             num(kelas),
		NISN:              str("0069876543"),
		Whatsapp:          str("+628129876543"),
		Instagram:         str("@sitirahma"),
		FotoKartuPelajar:  str("https://oss.example.com/kartu.webp"),
		ScreenshotTwibbon: str("https://oss.example.com/twibbon.webp"),
		IsVerified:        true,
	}
}

func openCompetition(now time.Time) *competitionModel.CompetitionModel {
	return &competitionModel.CompetitionModel{
		NamaKompetisi:         "Science Olympiad",
		Kategori:              constants.KategoriIndividual,
		Jenis:                 constants.JenisAcademic,
		HargaEarlyBird:        50000,
		HargaReguler:          75000,
		TanggalMulaiEarlyBird: now.Add(-24 * time.Hour),
		TanggalAkhirEarlyBird: now.Add(5 * 24 * time.Hour),
		DeadlineRegistrasi:    now.Add(10 * 24 * time.Hour),
		TanggalKompetisi:      now.Add(20 * 24 * time.Hour),
		MinKelas:              7,
		MaxKelas:              9,
	}
}

func TestCheckEligibility(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		profile         *profileModel.UserProfileModel
		mutateComp      func(*competitionModel.CompetitionModel)
		at              time.Time
		requireVerified bool
		wantOK          bool
		wantReason      string
	}{
		{
			name:    "tanpa profil",
			profile: nil, at: now,
			wantOK: false, wantReason: "membuat profil",
		},
		{
			name: "profil belum lengkap",
			profile: &profileModel.UserProfileModel{
				NamaLengkap: str("Siti"), Kelas: num(8),
			},
			at:     now,
			wantOK: false, wantReason: "belum lengkap (25%)",
		},
		{
			name:            "belum diverifikasi, verifikasi diminta",
			profile:         func() *profileModel.UserProfileModel { p := completeProfile(8); p.IsVerified = false; return p }(),
			at:              now,
			requireVerified: true,
			wantOK:          false, wantReason: "verifikasi admin",
		},
		{
			name:    "belum diverifikasi, cek dasar saja",
			profile: func() *profileModel.UserProfileModel { p := completeProfile(8); p.IsVerified = false; return p }(),
			at:      now,
			wantOK:  true,
		},
		{
			name:       "kelas di luar rentang",
			profile:    completeProfile(9),
			mutateComp: func(c *competitionModel.CompetitionModel) { c.MaxKelas = 8 },
			at:         now,
			wantOK:     false, wantReason: "kelas 7-8",
		},
		{
			name:    "deadline lewat",
			profile: completeProfile(8),
			at:      now.Add(11 * 24 * time.Hour),
			wantOK:  false, wantReason: "ditutup",
		},
		{
			name:    "tepat di deadline masih boleh",
			profile: completeProfile(8),
			at:      now.Add(10 * 24 * time.Hour),
			wantOK:  true,
		},
		{
			name:            "memenuhi semua syarat",
			profile:         completeProfile(7),
			at:              now,
			requireVerified: true,
			wantOK:          true, wantReason: "Memenuhi syarat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := openCompetition(now)
			if tt.mutateComp != nil {
				tt.mutateComp(comp)
			}
			ok, reason := CheckEligibility(tt.profile, comp, tt.at, tt.requireVerified)
			if ok != tt.wantOK {
				t.Errorf("CheckEligibility() ok = %v, want %v (reason: %s)", ok, tt.wantOK, reason)
			}
			if tt.wantReason != "" && !strings.Contains(reason, tt.wantReason) {
				t.Errorf("reason = %q, harus mengandung %q", reason, tt.wantReason)
			}
		})
	}
}

func TestEligibilityShortCircuitOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := openCompetition(now)
	comp.MaxKelas = 8

	// Profil kosong + kelas salah + deadline lewat: alasan pertama yang menang
	// adalah kelengkapan profil.
	p := &profileModel.UserProfileModel{Kelas: num(9)}
	_, reason := CheckEligibility(p, comp, now.Add(30*24*time.Hour), false)
	if !strings.Contains(reason, "belum lengkap") {
		t.Errorf("short-circuit salah urutan, reason = %q", reason)
	}
}
