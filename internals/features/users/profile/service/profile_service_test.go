package service

import (
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lombaku_backend/internals/features/users/profile/dto"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
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
	if err := db.AutoMigrate(&profileModel.UserProfileModel{}); err != nil {
		t.Fatalf("migrasi: %v", err)
	}
	return db
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestSaveProfileUpsert(t *testing.T) {
	db := setupDB(t)
	svc := NewProfileService(db)
	userID := uuid.New()

	p, err := svc.SaveProfile(userID, &dto.SaveProfileRequest{
		NamaLengkap: str("Budi Santoso"),
		Sekolah:     str("SMP Negeri 1"),
		Kelas:       num(8),
	})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if p.VerificationProgress != 37 {
		t.Errorf("progress tersimpan = %d, want 37", p.VerificationProgress)
	}

	// Partial update: field nil tidak menimpa nilai lama.
	p, err = svc.SaveProfile(userID, &dto.SaveProfileRequest{
		NISN: str("0051234567"),
	})
	if err != nil {
		t.Fatalf("SaveProfile kedua: %v", err)
	}
	if p.NamaLengkap == nil || *p.NamaLengkap != "Budi Santoso" {
		t.Errorf("nama lama tertimpa: %+v", p.NamaLengkap)
	}
	if p.VerificationProgress != 50 {
		t.Errorf("progress setelah NISN = %d, want 50", p.VerificationProgress)
	}

	var count int64
	db.Model(&profileModel.UserProfileModel{}).Where("user_id = ?", userID).Count(&count)
	if count != 1 {
		t.Errorf("upsert membuat %d baris, want 1", count)
	}
}

func TestSetDocumentURL(t *testing.T) {
	db := setupDB(t)
	svc := NewProfileService(db)
	userID := uuid.New()

	p, old, err := svc.SetDocumentURL(userID, DocKartuPelajar, "https://oss.example.com/kartu-v1.webp")
	if err != nil {
		t.Fatalf("SetDocumentURL: %v", err)
	}
	if old != "" {
		t.Errorf("upload pertama tidak boleh punya URL lama: %q", old)
	}
	if p.VerificationProgress != 12 { // floor(1/8*100)
		t.Errorf("progress = %d, want 12", p.VerificationProgress)
	}

	_, old, err = svc.SetDocumentURL(userID, DocKartuPelajar, "https://oss.example.com/kartu-v2.webp")
	if err != nil {
		t.Fatalf("SetDocumentURL kedua: %v", err)
	}
	if old != "https://oss.example.com/kartu-v1.webp" {
		t.Errorf("URL lama = %q, want versi pertama", old)
	}

	_, _, err = svc.SetDocumentURL(userID, "ijazah", "https://oss.example.com/x.webp")
	if fe, ok := err.(*fiber.Error); !ok || fe.Code != fiber.StatusBadRequest {
		t.Errorf("jenis dokumen asing harus 400, got %v", err)
	}
}

func seedComplete(t *testing.T, db *gorm.DB, userID uuid.UUID) {
	t.Helper()
	p := profileModel.UserProfileModel{
		UserID:      userID,
		NamaLengkap: str("Budi Santoso"), Sekolah: str("SMP Negeri 1"), Kelas: num(8),
		NISN: str("0051234567"), Whatsapp: str("+628123456789"), Instagram: str("@budi"),
		FotoKartuPelajar:  str("https://oss.example.com/kartu.webp"),
		ScreenshotTwibbon: str("https://oss.example.com/twibbon.webp"),
	}
	p.VerificationProgress = p.CompletionPercentage()
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profil: %v", err)
	}
}

func TestVerificationFlow(t *testing.T) {
	db := setupDB(t)
	svc := NewProfileService(db)
	complete := uuid.New()
	seedComplete(t, db, complete)

	incomplete := uuid.New()
	if _, err := svc.SaveProfile(incomplete, &dto.SaveProfileRequest{NamaLengkap: str("Siti")}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	t.Run("profil belum lengkap tidak bisa diverifikasi", func(t *testing.T) {
		_, err := svc.VerifyProfile(incomplete)
		if fe, ok := err.(*fiber.Error); !ok || fe.Code != fiber.StatusBadRequest {
			t.Errorf("want 400, got %v", err)
		}
	})

	t.Run("antrian verifikasi hanya profil lengkap", func(t *testing.T) {
		list, total, err := svc.ListAwaitingVerification(helper.Paging{Page: 1, PerPage: 20, Limit: 20})
		if err != nil {
			t.Fatalf("ListAwaitingVerification: %v", err)
		}
		if total != 1 || len(list) != 1 || list[0].UserID != complete {
			t.Errorf("antrian = %d item (total %d), want hanya profil lengkap", len(list), total)
		}
	})

	t.Run("verify lalu revoke", func(t *testing.T) {
		p, err := svc.VerifyProfile(complete)
		if err != nil {
			t.Fatalf("VerifyProfile: %v", err)
		}
		if !p.IsVerified {
			t.Error("profil harus terverifikasi")
		}

		if _, err := svc.VerifyProfile(complete); err == nil {
			t.Error("verifikasi ganda harus gagal")
		}

		p, err = svc.RevokeVerification(complete)
		if err != nil {
			t.Fatalf("RevokeVerification: %v", err)
		}
		if p.IsVerified {
			t.Error("verifikasi harus tercabut")
		}
	})
}
