package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	eligibilityService "lombaku_backend/internals/features/competitions/competition/service"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
)

type RegistrationService struct {
	DB *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{DB: db}
}

// CheckPreconditions memvalidasi syarat pendaftaran individu tanpa menulis
// apa pun. Controller memanggil ini dulu sebelum mengunggah file submission,
// supaya file tidak terlanjur naik ke OSS untuk pendaftaran yang pasti gagal.
func (s *RegistrationService) CheckPreconditions(userID, competitionID uuid.UUID, now time.Time) (*competitionModel.CompetitionModel, error) {
	var comp competitionModel.CompetitionModel
	if err := s.DB.First(&comp, "id = ?", competitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data kompetisi")
	}
	if comp.IsTeamCategory() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kompetisi tim didaftarkan lewat tim, bukan perorangan")
	}

	var profile profileModel.UserProfileModel
	profilePtr := &profile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
		}
		profilePtr = nil
	}

	if ok, reason := eligibilityService.CheckEligibility(profilePtr, &comp, now, true); !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, reason)
	}

	var count int64
	if err := s.DB.Model(&registrationModel.RegistrationModel{}).
		Where("user_id = ? AND competition_id = ?", userID, competitionID).
		Count(&count).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa registrasi")
	}
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di kompetisi ini")
	}
	return &comp, nil
}

// RegisterIndividual membuat registrasi individu beserta tagihan pembayarannya
// dalam satu transaksi. fileURL sudah berupa URL publik hasil upload (bila
// lombanya mensyaratkan file).
func (s *RegistrationService) RegisterIndividual(
	userID uuid.UUID,
	comp *competitionModel.CompetitionModel,
	fileURL *string,
	driveLink *string,
	now time.Time,
) (*registrationModel.RegistrationModel, error) {
	if comp.RequiresFileUpload() && (fileURL == nil || *fileURL == "") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lomba ini mewajibkan file submission")
	}
	if comp.RequiresDriveLink() && (driveLink == nil || *driveLink == "") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lomba ini mewajibkan link Google Drive karya")
	}
	if !comp.RequiresFileUpload() {
		fileURL = nil
	}
	if !comp.RequiresDriveLink() {
		driveLink = nil
	}

	locked := comp.LockedPriceAt(now)
	registration := registrationModel.RegistrationModel{
		UserID:            userID,
		CompetitionID:     comp.ID,
		JenisRegistrasi:   constants.KategoriIndividual,
		Status:            constants.RegStatusPending,
		HargaTerkunci:     locked,
		FileSubmission:    fileURL,
		GoogleDriveLink:   driveLink,
		TanggalRegistrasi: now,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di kompetisi ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat registrasi")
		}
		payment := paymentModel.PaymentModel{
			RegistrationID: registration.ID,
			Jumlah:         locked,
			Status:         constants.PaymentStatusPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tagihan pembayaran")
		}
		registration.Payment = &payment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &registration, nil
}

/* =======================
   Query
======================= */

func (s *RegistrationService) GetByID(id uuid.UUID) (*registrationModel.RegistrationModel, error) {
	var reg registrationModel.RegistrationModel
	if err := s.DB.Preload("Payment").First(&reg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil registrasi")
	}
	return &reg, nil
}

// ListMine: seluruh registrasi milik user, terbaru dulu.
func (s *RegistrationService) ListMine(userID uuid.UUID) ([]registrationModel.RegistrationModel, error) {
	var regs []registrationModel.RegistrationModel
	err := s.DB.Preload("Payment").
		Where("user_id = ?", userID).
		Order("tanggal_registrasi DESC").
		Find(&regs).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar registrasi")
	}
	return regs, nil
}

// ListByCompetition untuk admin, difilter status bila diisi.
func (s *RegistrationService) ListByCompetition(competitionID uuid.UUID, status string) ([]registrationModel.RegistrationModel, error) {
	q := s.DB.Preload("Payment").Where("competition_id = ?", competitionID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var regs []registrationModel.RegistrationModel
	if err := q.Order("tanggal_registrasi ASC").Find(&regs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar registrasi")
	}
	return regs, nil
}
