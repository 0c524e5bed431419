package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
	teamModel "lombaku_backend/internals/features/registrations/team/model"
	authModel "lombaku_backend/internals/features/users/auth/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=lombaku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk seluruh tabel portal lomba.
// Unique index bisnis (registrasi per user per lomba, anggota per tim, dst)
// ikut dibuat di sini lewat tag model.
func Migrate() {
	if err := DB.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&profileModel.UserProfileModel{},
		&competitionModel.CompetitionModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&registrationModel.RegistrationModel{},
		&paymentModel.PaymentModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi DB: %v", err)
	}
	log.Println("✅ Migrasi DB selesai.")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
