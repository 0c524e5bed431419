package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lombaku_backend/internals/constants"
	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
	teamModel "lombaku_backend/internals/features/registrations/team/model"
	authModel "lombaku_backend/internals/features/users/auth/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&authModel.UserModel{},
		&profileModel.UserProfileModel{},
		&competitionModel.CompetitionModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&registrationModel.RegistrationModel{},
		&paymentModel.PaymentModel{},
	)
	if err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

func seedVerifiedUser(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	user := authModel.UserModel{Email: email, Password: "hashed", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	nama, sekolah := "Budi Santoso", "SMP Negeri 1"
	kelas := 8
	nisn, wa, ig := "0051234567", "+628123456789", "@budi"
	kartu := "https://oss.example.com/kartu.webp"
	twibbon := "https://oss.example.com/twibbon.webp"
	profile := profileModel.UserProfileModel{
		UserID: user.ID, NamaLengkap: &nama, Sekolah: &sekolah, Kelas: &kelas,
		NISN: &nisn, Whatsapp: &wa, Instagram: &ig,
		FotoKartuPelajar: &kartu, ScreenshotTwibbon: &twibbon,
		IsVerified: true,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profil: %v", err)
	}
	return user.ID
}

func seedCompetition(t *testing.T, db *gorm.DB, now time.Time, jenis string) *competitionModel.CompetitionModel {
	t.Helper()
	comp := competitionModel.CompetitionModel{
		NamaKompetisi:         "Science Olympiad",
		Kategori:              constants.KategoriIndividual,
		Jenis:                 jenis,
		HargaEarlyBird:        50000,
		HargaReguler:          75000,
		TanggalMulaiEarlyBird: now.Add(-24 * time.Hour),
		TanggalAkhirEarlyBird: now.Add(5 * 24 * time.Hour),
		DeadlineRegistrasi:    now.Add(10 * 24 * time.Hour),
		TanggalKompetisi:      now.Add(20 * 24 * time.Hour),
		MinKelas:              7,
		MaxKelas:              9,
	}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("seed kompetisi: %v", err)
	}
	return &comp
}

func wantStatus(t *testing.T, err error, code int) {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	if fe.Code != code {
		t.Fatalf("status = %d (%s), want %d", fe.Code, fe.Message, code)
	}
}

func TestRegisterIndividual(t *testing.T) {
	db := setupDB(t)
	svc := NewRegistrationService(db)
	now := time.Now()
	comp := seedCompetition(t, db, now, constants.JenisAcademic)
	userID := seedVerifiedUser(t, db, "budi@mail.com")

	fileURL := "https://oss.example.com/submission/jawaban.pdf"

	checked, err := svc.CheckPreconditions(userID, comp.ID, now)
	if err != nil {
		t.Fatalf("CheckPreconditions: %v", err)
	}

	reg, err := svc.RegisterIndividual(userID, checked, &fileURL, nil, now)
	if err != nil {
		t.Fatalf("RegisterIndividual: %v", err)
	}
	if reg.HargaTerkunci != 50000 {
		t.Errorf("harga terkunci = %d, want harga early bird 50000", reg.HargaTerkunci)
	}
	if reg.Payment == nil || reg.Payment.Jumlah != 50000 {
		t.Errorf("tagihan individu = %+v, want 50000", reg.Payment)
	}
	if reg.Status != constants.RegStatusPending {
		t.Errorf("status awal = %s, want pending", reg.Status)
	}

	t.Run("registrasi ganda ditolak", func(t *testing.T) {
		_, err := svc.CheckPreconditions(userID, comp.ID, now)
		wantStatus(t, err, fiber.StatusConflict)
	})
}

func TestLockedPriceImmutable(t *testing.T) {
	db := setupDB(t)
	svc := NewRegistrationService(db)
	now := time.Now()
	comp := seedCompetition(t, db, now, constants.JenisEsports)
	early := seedVerifiedUser(t, db, "awal@mail.com")
	late := seedVerifiedUser(t, db, "telat@mail.com")

	// Daftar saat early bird.
	checked, _ := svc.CheckPreconditions(early, comp.ID, now)
	regEarly, err := svc.RegisterIndividual(early, checked, nil, nil, now)
	if err != nil {
		t.Fatalf("registrasi early bird: %v", err)
	}

	// Daftar setelah window berakhir: harga reguler.
	afterWindow := comp.TanggalAkhirEarlyBird.Add(24 * time.Hour)
	checked, _ = svc.CheckPreconditions(late, comp.ID, afterWindow)
	regLate, err := svc.RegisterIndividual(late, checked, nil, nil, afterWindow)
	if err != nil {
		t.Fatalf("registrasi reguler: %v", err)
	}

	if regEarly.HargaTerkunci != 50000 || regLate.HargaTerkunci != 75000 {
		t.Errorf("harga terkunci = %d / %d, want 50000 / 75000",
			regEarly.HargaTerkunci, regLate.HargaTerkunci)
	}

	// Harga terkunci tidak berubah walau dibaca ulang setelah window lewat.
	fresh, err := svc.GetByID(regEarly.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fresh.HargaTerkunci != 50000 {
		t.Errorf("harga terkunci berubah setelah window: %d", fresh.HargaTerkunci)
	}
}

func TestRegisterIndividualValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewRegistrationService(db)
	now := time.Now()
	userID := seedVerifiedUser(t, db, "budi@mail.com")

	t.Run("kompetisi tidak ada", func(t *testing.T) {
		_, err := svc.CheckPreconditions(userID, uuid.New(), now)
		wantStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("lomba akademik tanpa file", func(t *testing.T) {
		comp := seedCompetition(t, db, now, constants.JenisAcademic)
		checked, err := svc.CheckPreconditions(userID, comp.ID, now)
		if err != nil {
			t.Fatalf("CheckPreconditions: %v", err)
		}
		_, err = svc.RegisterIndividual(userID, checked, nil, nil, now)
		wantStatus(t, err, fiber.StatusBadRequest)
	})

	t.Run("lomba kreatif tanpa link drive", func(t *testing.T) {
		comp := seedCompetition(t, db, now, constants.JenisCreative)
		comp.NamaKompetisi = "Poster Design"
		db.Save(comp)
		checked, err := svc.CheckPreconditions(userID, comp.ID, now)
		if err != nil {
			t.Fatalf("CheckPreconditions: %v", err)
		}
		_, err = svc.RegisterIndividual(userID, checked, nil, nil, now)
		wantStatus(t, err, fiber.StatusBadRequest)
	})

	t.Run("deadline lewat", func(t *testing.T) {
		comp := seedCompetition(t, db, now, constants.JenisEsports)
		_, err := svc.CheckPreconditions(userID, comp.ID, comp.DeadlineRegistrasi.Add(time.Hour))
		wantStatus(t, err, fiber.StatusBadRequest)
	})

	t.Run("kategori tim ditolak di jalur individu", func(t *testing.T) {
		comp := seedCompetition(t, db, now, constants.JenisBasketball)
		comp.Kategori = constants.KategoriTeam
		db.Save(comp)
		_, err := svc.CheckPreconditions(userID, comp.ID, now)
		wantStatus(t, err, fiber.StatusBadRequest)
	})

	t.Run("profil belum diverifikasi", func(t *testing.T) {
		comp := seedCompetition(t, db, now, constants.JenisEsports)
		comp.NamaKompetisi = "Mobile Legends"
		db.Save(comp)
		unverified := seedVerifiedUser(t, db, "baru@mail.com")
		db.Model(&profileModel.UserProfileModel{}).
			Where("user_id = ?", unverified).Update("is_verified", false)
		_, err := svc.CheckPreconditions(unverified, comp.ID, now)
		wantStatus(t, err, fiber.StatusBadRequest)
	})
}
