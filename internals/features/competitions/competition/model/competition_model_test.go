package model

import (
	"testing"
	"time"

	"lombaku_backend/internals/constants"
)

func day(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

// Kompetisi sehat: early bird sedang aktif (mulai kemarin, berakhir 5 hari lagi).
func sampleCompetition(now time.Time) CompetitionModel {
	return CompetitionModel{
		NamaKompetisi:         "Math Olympiad",
		Kategori:              constants.KategoriIndividual,
		Jenis:                 constants.JenisAcademic,
		HargaEarlyBird:        50000,
		HargaReguler:          75000,
		TanggalMulaiEarlyBird: now.Add(-day(1)),
		TanggalAkhirEarlyBird: now.Add(day(5)),
		DeadlineRegistrasi:    now.Add(day(10)),
		TanggalKompetisi:      now.Add(day(20)),
		MinKelas:              7,
		MaxKelas:              9,
	}
}

func TestCurrentPriceEarlyBirdWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"di dalam window", now, 50000},
		{"tepat di awal window (inklusif)", c.TanggalMulaiEarlyBird, 50000},
		{"tepat di akhir window (inklusif)", c.TanggalAkhirEarlyBird, 50000},
		{"sebelum window", c.TanggalMulaiEarlyBird.Add(-time.Second), 75000},
		{"sesudah window", c.TanggalAkhirEarlyBird.Add(time.Second), 75000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CurrentPrice(tt.at); got != tt.want {
				t.Errorf("CurrentPrice(%v) = %d, want %d", tt.at, got, tt.want)
			}
			if got := c.LockedPriceAt(tt.at); got != tt.want {
				t.Errorf("LockedPriceAt(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestLockedPriceStableAfterWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)

	locked := c.LockedPriceAt(now)
	if locked != 50000 {
		t.Fatalf("locked price saat early bird = %d, want 50000", locked)
	}
	// Setelah window berakhir harga berjalan naik, harga terkunci tidak.
	after := c.TanggalAkhirEarlyBird.Add(day(1))
	if got := c.CurrentPrice(after); got != 75000 {
		t.Errorf("CurrentPrice setelah window = %d, want 75000", got)
	}
	if got := c.LockedPriceAt(now); got != locked {
		t.Errorf("LockedPriceAt instant yang sama berubah: %d vs %d", got, locked)
	}
}

func TestCurrentPriceFallbackOnInvalidSchedule(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)
	// Window terbalik: refuse menghitung diskon, selalu harga reguler.
	c.TanggalMulaiEarlyBird, c.TanggalAkhirEarlyBird = c.TanggalAkhirEarlyBird, c.TanggalMulaiEarlyBird

	if len(c.ValidateSchedule()) == 0 {
		t.Fatal("jadwal terbalik harus menghasilkan pelanggaran")
	}
	if got := c.CurrentPrice(now); got != 75000 {
		t.Errorf("CurrentPrice dengan jadwal rusak = %d, want harga reguler 75000", got)
	}
	if c.IsEarlyBirdActive(now) {
		t.Error("early bird tidak boleh aktif pada konfigurasi rusak")
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("konfigurasi sehat", func(t *testing.T) {
		c := sampleCompetition(now)
		if errs := c.ValidateSchedule(); len(errs) != 0 {
			t.Errorf("ValidateSchedule() = %v, want kosong", errs)
		}
	})

	t.Run("harga terbalik", func(t *testing.T) {
		c := sampleCompetition(now)
		c.HargaEarlyBird = 80000
		errs := c.ValidateSchedule()
		if len(errs) != 1 {
			t.Fatalf("ValidateSchedule() = %v, want 1 pelanggaran", errs)
		}
	})

	t.Run("semua terbalik", func(t *testing.T) {
		c := CompetitionModel{
			HargaEarlyBird:        75000,
			HargaReguler:          50000,
			TanggalMulaiEarlyBird: now.Add(day(4)),
			TanggalAkhirEarlyBird: now.Add(day(3)),
			DeadlineRegistrasi:    now.Add(day(2)),
			TanggalKompetisi:      now.Add(day(1)),
		}
		if errs := c.ValidateSchedule(); len(errs) != 4 {
			t.Errorf("ValidateSchedule() = %v, want 4 pelanggaran", errs)
		}
	})
}

func TestEarlyBirdSavings(t *testing.T) {
	now := time.Now()
	c := sampleCompetition(now)
	if got := c.EarlyBirdSavings(); got != 25000 {
		t.Errorf("EarlyBirdSavings() = %d, want 25000", got)
	}
	// Tetap dihitung dari konfigurasi, walau window sudah lewat.
	if got := c.EarlyBirdSavings(); got != 25000 {
		t.Errorf("EarlyBirdSavings() setelah window = %d, want 25000", got)
	}
}

func TestEarlyBirdDaysLeft(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"5 hari tersisa", now, 5},
		{"tersisa setengah hari dibulatkan ke bawah", c.TanggalAkhirEarlyBird.Add(-12 * time.Hour), 0},
		{"belum mulai → 0", c.TanggalMulaiEarlyBird.Add(-day(3)), 0},
		{"sudah lewat → 0", c.TanggalAkhirEarlyBird.Add(day(1)), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.EarlyBirdDaysLeft(tt.at); got != tt.want {
				t.Errorf("EarlyBirdDaysLeft(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}

func TestRegistrationDeadline(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)

	if !c.IsRegistrationOpen(c.DeadlineRegistrasi) {
		t.Error("deadline inklusif: tepat di deadline harus masih buka")
	}
	if c.IsRegistrationOpen(c.DeadlineRegistrasi.Add(time.Second)) {
		t.Error("sesudah deadline harus tutup")
	}
	if got := c.RegistrationDaysLeft(now); got != 10 {
		t.Errorf("RegistrationDaysLeft = %d, want 10", got)
	}
	if got := c.RegistrationDaysLeft(c.DeadlineRegistrasi.Add(day(1))); got != 0 {
		t.Errorf("RegistrationDaysLeft setelah deadline = %d, want 0", got)
	}
}

func TestPricingSummary(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := sampleCompetition(now)

	info := c.PricingSummary(now)
	if info.CurrentPrice != 50000 || !info.IsEarlyBirdActive {
		t.Errorf("summary saat early bird: %+v", info)
	}
	if info.EarlyBirdSavings != 25000 || info.EarlyBirdDaysLeft != 5 {
		t.Errorf("savings/days salah: %+v", info)
	}

	after := c.TanggalAkhirEarlyBird.Add(day(1))
	info = c.PricingSummary(after)
	if info.CurrentPrice != 75000 || info.IsEarlyBirdActive || info.EarlyBirdDaysLeft != 0 {
		t.Errorf("summary setelah early bird: %+v", info)
	}
}

func TestSubmissionContract(t *testing.T) {
	now := time.Now()

	academic := sampleCompetition(now)
	if !academic.RequiresFileUpload() || academic.RequiresDriveLink() {
		t.Error("lomba akademik harus minta file, bukan link")
	}
	if !academic.IsFileAllowed("jawaban.PDF") {
		t.Error("ekstensi default pdf harus diterima")
	}
	if academic.IsFileAllowed("virus.exe") || academic.IsFileAllowed("tanpa-ekstensi") {
		t.Error("ekstensi di luar daftar harus ditolak")
	}

	creative := sampleCompetition(now)
	creative.Jenis = constants.JenisCreative
	if creative.RequiresFileUpload() || !creative.RequiresDriveLink() {
		t.Error("lomba kreatif harus minta link Google Drive")
	}

	esports := sampleCompetition(now)
	esports.Jenis = constants.JenisEsports
	esports.Kategori = constants.KategoriTeam
	if esports.RequiresFileUpload() || esports.RequiresDriveLink() {
		t.Error("lomba esports tidak minta submission")
	}
}

func TestValidateTeamSize(t *testing.T) {
	min5, max8 := 5, 8
	c := CompetitionModel{Kategori: constants.KategoriTeam, MinAnggota: &min5, MaxAnggota: &max8}

	for _, tt := range []struct {
		n    int
		want bool
	}{{4, false}, {5, true}, {8, true}, {9, false}} {
		if got := c.ValidateTeamSize(tt.n); got != tt.want {
			t.Errorf("ValidateTeamSize(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	individual := CompetitionModel{Kategori: constants.KategoriIndividual}
	if !individual.ValidateTeamSize(1) {
		t.Error("kategori individual tidak dibatasi ukuran tim")
	}
}
