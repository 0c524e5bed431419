package service

import (
	"fmt"
	"time"

	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
)

// CheckEligibility memutuskan apakah user boleh mendaftar lomba tertentu.
// Urutan short-circuit: profil ada → profil 100% → (terverifikasi bila
// diminta) → kelas dalam rentang → deadline belum lewat. Alasan pertama yang
// gagal yang dikembalikan.
//
// requireVerified=false dipakai untuk menampilkan eligibility di halaman lomba;
// requireVerified=true dipakai saat benar-benar submit registrasi/pembayaran.
// Dulu dua jalur ini duplikat dengan perilaku beda; sekarang satu fungsi
// dengan flag eksplisit.
func CheckEligibility(profile *profileModel.UserProfileModel, comp *competitionModel.CompetitionModel, now time.Time, requireVerified bool) (bool, string) {
	if profile == nil {
		return false, "Anda harus membuat profil terlebih dahulu"
	}

	if completion := profile.CompletionPercentage(); completion < 100 {
		return false, fmt.Sprintf("Profil belum lengkap (%d%%). Lengkapi profil hingga 100%%", completion)
	}

	if requireVerified && !profile.IsVerified {
		return false, "Profil sedang dalam proses verifikasi admin"
	}

	if !profile.IsGradeEligible(comp.MinKelas, comp.MaxKelas) {
		return false, fmt.Sprintf("Kompetisi ini hanya untuk kelas %d-%d", comp.MinKelas, comp.MaxKelas)
	}

	if !comp.IsRegistrationOpen(now) {
		return false, "Pendaftaran kompetisi sudah ditutup"
	}

	return true, "Memenuhi syarat untuk mendaftar"
}

// IsEligible: versi boolean untuk listing lomba (tanpa syarat verifikasi,
// mengikuti perilaku halaman publik portal lama).
func IsEligible(profile *profileModel.UserProfileModel, comp *competitionModel.CompetitionModel, now time.Time) bool {
	ok, _ := CheckEligibility(profile, comp, now, false)
	return ok
}
