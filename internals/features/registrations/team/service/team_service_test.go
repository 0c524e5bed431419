package service

import (
	"fmt"
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
	"lombaku_backend/internals/features/registrations/team/dto"
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

func seedUser(t *testing.T, db *gorm.DB, email, sekolah string) uuid.UUID {
	t.Helper()
	user := authModel.UserModel{Email: email, Password: "hashed", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	nama := "Siswa " + email
	kelas := 8
	nisn := fmt.Sprintf("%010d", time.Now().UnixNano()%1e10)
	wa := "+628123456789"
	ig := "@" + email
	kartu := "https://oss.example.com/kartu.webp"
	twibbon := "https://oss.example.com/twibbon.webp"
	profile := profileModel.UserProfileModel{
		UserID:            user.ID,
		NamaLengkap:       &nama,
		Sekolah:           &sekolah,
		Kelas:             &kelas,
		NISN:              &nisn,
		Whatsapp:          &wa,
		Instagram:         &ig,
		FotoKartuPelajar:  &kartu,
		ScreenshotTwibbon: &twibbon,
		IsVerified:        true,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed profil: %v", err)
	}
	return user.ID
}

func seedTeamCompetition(t *testing.T, db *gorm.DB, now time.Time, min, max int) *competitionModel.CompetitionModel {
	t.Helper()
	comp := competitionModel.CompetitionModel{
		NamaKompetisi:         "Basketball 3x3",
		Kategori:              constants.KategoriTeam,
		Jenis:                 constants.JenisBasketball,
		HargaEarlyBird:        50000,
		HargaReguler:          75000,
		TanggalMulaiEarlyBird: now.Add(-24 * time.Hour),
		TanggalAkhirEarlyBird: now.Add(5 * 24 * time.Hour),
		DeadlineRegistrasi:    now.Add(10 * 24 * time.Hour),
		TanggalKompetisi:      now.Add(20 * 24 * time.Hour),
		MinKelas:              7,
		MaxKelas:              9,
		MinAnggota:            &min,
		MaxAnggota:            &max,
	}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("seed kompetisi: %v", err)
	}
	return &comp
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	if !ok {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	return fe.Code
}

func TestCreateTeam(t *testing.T) {
	db := setupDB(t)
	svc := NewTeamService(db)
	now := time.Now()
	comp := seedTeamCompetition(t, db, now, 2, 3)
	captain := seedUser(t, db, "kapten@mail.com", "SMP Negeri 1")

	team, err := svc.CreateTeam(captain, &dto.CreateTeamRequest{
		NamaTim: "Garuda", CompetitionID: comp.ID,
	}, now)
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.CaptainID != captain || team.MemberCount() != 1 {
		t.Errorf("kapten harus otomatis jadi anggota pertama: %+v", team)
	}
	if team.Members[0].Posisi != constants.PosisiCaptain {
		t.Errorf("posisi anggota pertama = %s, want Captain", team.Members[0].Posisi)
	}

	t.Run("nama tim duplikat di kompetisi yang sama", func(t *testing.T) {
		other := seedUser(t, db, "lain@mail.com", "SMP Negeri 1")
		_, err := svc.CreateTeam(other, &dto.CreateTeamRequest{
			NamaTim: "Garuda", CompetitionID: comp.ID,
		}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("duplikat nama harus 409, got %v", err)
		}
	})

	t.Run("kapten tidak bisa membuat tim kedua", func(t *testing.T) {
		_, err := svc.CreateTeam(captain, &dto.CreateTeamRequest{
			NamaTim: "Elang", CompetitionID: comp.ID,
		}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("satu user satu tim per kompetisi, got %v", err)
		}
	})

	t.Run("profil belum diverifikasi ditolak", func(t *testing.T) {
		unverified := seedUser(t, db, "baru@mail.com", "SMP Negeri 1")
		db.Model(&profileModel.UserProfileModel{}).
			Where("user_id = ?", unverified).Update("is_verified", false)
		_, err := svc.CreateTeam(unverified, &dto.CreateTeamRequest{
			NamaTim: "Rajawali", CompetitionID: comp.ID,
		}, now)
		if fiberStatus(t, err) != fiber.StatusBadRequest {
			t.Errorf("kapten belum verified harus 400, got %v", err)
		}
	})
}

func TestAddMember(t *testing.T) {
	db := setupDB(t)
	svc := NewTeamService(db)
	now := time.Now()
	comp := seedTeamCompetition(t, db, now, 2, 3)
	captain := seedUser(t, db, "kapten@mail.com", "SMP Negeri 1")
	seedUser(t, db, "anggota@mail.com", "SMP Negeri 1")
	seedUser(t, db, "beda@mail.com", "SMP Negeri 2")

	team, err := svc.CreateTeam(captain, &dto.CreateTeamRequest{
		NamaTim: "Garuda", CompetitionID: comp.ID,
	}, now)
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	t.Run("tambah anggota satu sekolah", func(t *testing.T) {
		m, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "anggota@mail.com"}, now)
		if err != nil {
			t.Fatalf("AddMember: %v", err)
		}
		if m.Posisi != constants.PosisiPlayer {
			t.Errorf("posisi default = %s, want Player", m.Posisi)
		}
	})

	t.Run("sekolah berbeda ditolak", func(t *testing.T) {
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "beda@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("beda sekolah harus 409, got %v", err)
		}
	})

	t.Run("anggota ganda ditolak", func(t *testing.T) {
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "anggota@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("anggota ganda harus 409, got %v", err)
		}
	})

	t.Run("kelas di luar rentang ditolak", func(t *testing.T) {
		kelasEnam := seedUser(t, db, "kelas6@mail.com", "SMP Negeri 1")
		db.Model(&profileModel.UserProfileModel{}).
			Where("user_id = ?", kelasEnam).Update("kelas", 6)
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "kelas6@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusBadRequest {
			t.Errorf("calon anggota di luar rentang kelas harus 400, got %v", err)
		}
	})

	t.Run("pendaftaran tutup ditolak", func(t *testing.T) {
		seedUser(t, db, "terlambat@mail.com", "SMP Negeri 1")
		afterDeadline := comp.DeadlineRegistrasi.Add(time.Hour)
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "terlambat@mail.com"}, afterDeadline)
		if fiberStatus(t, err) != fiber.StatusBadRequest {
			t.Errorf("bergabung setelah deadline harus 400, got %v", err)
		}
	})

	t.Run("bukan kapten ditolak", func(t *testing.T) {
		var member authModel.UserModel
		db.First(&member, "email = ?", "anggota@mail.com")
		_, err := svc.AddMember(member.ID, team.ID, &dto.AddMemberRequest{Email: "beda@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusForbidden {
			t.Errorf("non-kapten harus 403, got %v", err)
		}
	})

	t.Run("tim penuh ditolak", func(t *testing.T) {
		seedUser(t, db, "ketiga@mail.com", "SMP Negeri 1")
		if _, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "ketiga@mail.com"}, now); err != nil {
			t.Fatalf("anggota ketiga harus masuk: %v", err)
		}
		seedUser(t, db, "keempat@mail.com", "SMP Negeri 1")
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "keempat@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("melebihi max_anggota harus 409, got %v", err)
		}
	})
}

func TestRemoveMember(t *testing.T) {
	db := setupDB(t)
	svc := NewTeamService(db)
	now := time.Now()
	comp := seedTeamCompetition(t, db, now, 2, 5)
	captain := seedUser(t, db, "kapten@mail.com", "SMP Negeri 1")
	memberID := seedUser(t, db, "anggota@mail.com", "SMP Negeri 1")

	team, _ := svc.CreateTeam(captain, &dto.CreateTeamRequest{NamaTim: "Garuda", CompetitionID: comp.ID}, now)
	if _, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "anggota@mail.com"}, now); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	if err := svc.RemoveMember(captain, team.ID, captain); fiberStatus(t, err) != fiber.StatusConflict {
		t.Errorf("mengeluarkan kapten harus 409, got %v", err)
	}
	if err := svc.RemoveMember(captain, team.ID, uuid.New()); fiberStatus(t, err) != fiber.StatusNotFound {
		t.Errorf("bukan anggota harus 404, got %v", err)
	}
	if err := svc.RemoveMember(captain, team.ID, memberID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}

	fresh, _ := svc.GetTeam(team.ID)
	if fresh.MemberCount() != 1 {
		t.Errorf("anggota tersisa = %d, want 1", fresh.MemberCount())
	}
}

func TestTeamCompletenessAndRegister(t *testing.T) {
	db := setupDB(t)
	svc := NewTeamService(db)
	now := time.Now()
	comp := seedTeamCompetition(t, db, now, 2, 3)
	captain := seedUser(t, db, "kapten@mail.com", "SMP Negeri 1")
	seedUser(t, db, "anggota@mail.com", "SMP Negeri 1")

	team, _ := svc.CreateTeam(captain, &dto.CreateTeamRequest{NamaTim: "Garuda", CompetitionID: comp.ID}, now)

	t.Run("kurang anggota belum siap", func(t *testing.T) {
		readiness, err := svc.CheckCompleteness(team.ID)
		if err != nil {
			t.Fatalf("CheckCompleteness: %v", err)
		}
		if readiness.IsComplete || len(readiness.Problems) == 0 {
			t.Errorf("tim beranggota 1 dari minimal 2 harus belum siap: %+v", readiness)
		}
	})

	t.Run("registrasi ditolak saat belum siap", func(t *testing.T) {
		_, err := svc.RegisterTeam(captain, team.ID, now)
		if fiberStatus(t, err) != fiber.StatusBadRequest {
			t.Errorf("registrasi tim belum siap harus 400, got %v", err)
		}
	})

	if _, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "anggota@mail.com"}, now); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	t.Run("registrasi sukses: harga terkunci x jumlah anggota", func(t *testing.T) {
		reg, err := svc.RegisterTeam(captain, team.ID, now)
		if err != nil {
			t.Fatalf("RegisterTeam: %v", err)
		}
		if reg.HargaTerkunci != 50000 {
			t.Errorf("harga terkunci early bird = %d, want 50000", reg.HargaTerkunci)
		}
		if reg.Payment == nil || reg.Payment.Jumlah != 100000 {
			t.Errorf("tagihan = %+v, want 50000 x 2 anggota", reg.Payment)
		}
		if reg.JenisRegistrasi != constants.KategoriTeam || reg.TeamID == nil {
			t.Errorf("registrasi harus bertipe tim: %+v", reg)
		}
	})

	t.Run("registrasi ganda ditolak", func(t *testing.T) {
		_, err := svc.RegisterTeam(captain, team.ID, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("registrasi tim ganda harus 409, got %v", err)
		}
	})

	t.Run("komposisi terkunci setelah registrasi", func(t *testing.T) {
		seedUser(t, db, "telat@mail.com", "SMP Negeri 1")
		_, err := svc.AddMember(captain, team.ID, &dto.AddMemberRequest{Email: "telat@mail.com"}, now)
		if fiberStatus(t, err) != fiber.StatusConflict {
			t.Errorf("tambah anggota setelah terdaftar harus 409, got %v", err)
		}
	})
}
