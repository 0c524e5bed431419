package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/users/profile/dto"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
)

// Jenis dokumen profil yang bisa diunggah.
const (
	DocKartuPelajar = "foto_kartu_pelajar"
	DocTwibbon      = "screenshot_twibbon"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

func (s *ProfileService) GetByUserID(userID uuid.UUID) (*profileModel.UserProfileModel, error) {
	var p profileModel.UserProfileModel
	if err := s.DB.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Profil belum dibuat")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return &p, nil
}

// SaveProfile meng-upsert profil user. Field nil pada request tidak menyentuh
// nilai tersimpan. verification_progress di-persist ulang setiap kali simpan
// supaya kolomnya tidak pernah menyimpang dari isi field.
func (s *ProfileService) SaveProfile(userID uuid.UUID, req *dto.SaveProfileRequest) (*profileModel.UserProfileModel, error) {
	var p profileModel.UserProfileModel
	err := s.DB.First(&p, "user_id = ?", userID).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	if isNew {
		p = profileModel.UserProfileModel{UserID: userID}
	}

	if req.NamaLengkap != nil {
		p.NamaLengkap = req.NamaLengkap
	}
	if req.Sekolah != nil {
		p.Sekolah = req.Sekolah
	}
	if req.Kelas != nil {
		p.Kelas = req.Kelas
	}
	if req.NISN != nil {
		p.NISN = req.NISN
	}
	if req.Whatsapp != nil {
		p.Whatsapp = req.Whatsapp
	}
	if req.Instagram != nil {
		p.Instagram = req.Instagram
	}
	if req.Twitter != nil {
		p.Twitter = req.Twitter
	}
	p.VerificationProgress = p.CompletionPercentage()

	if isNew {
		if err := s.DB.Create(&p).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nil, fiber.NewError(fiber.StatusConflict, "Profil sudah ada")
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan profil")
		}
		return &p, nil
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan profil")
	}
	return &p, nil
}

// SetDocumentURL menyimpan URL dokumen hasil upload OSS dan mengembalikan URL
// lama (bila ada) untuk dihapus oleh controller.
func (s *ProfileService) SetDocumentURL(userID uuid.UUID, jenis, url string) (*profileModel.UserProfileModel, string, error) {
	var p profileModel.UserProfileModel
	err := s.DB.First(&p, "user_id = ?", userID).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	if isNew {
		p = profileModel.UserProfileModel{UserID: userID}
	}

	var old string
	switch jenis {
	case DocKartuPelajar:
		if p.FotoKartuPelajar != nil {
			old = *p.FotoKartuPelajar
		}
		p.FotoKartuPelajar = &url
	case DocTwibbon:
		if p.ScreenshotTwibbon != nil {
			old = *p.ScreenshotTwibbon
		}
		p.ScreenshotTwibbon = &url
	default:
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Jenis dokumen tidak dikenal")
	}
	p.VerificationProgress = p.CompletionPercentage()

	if isNew {
		err = s.DB.Create(&p).Error
	} else {
		err = s.DB.Save(&p).Error
	}
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan dokumen profil")
	}
	return &p, old, nil
}

/* =======================
   Verifikasi (admin)
======================= */

// ListAwaitingVerification: profil 100% lengkap yang belum diverifikasi.
func (s *ProfileService) ListAwaitingVerification(paging helper.Paging) ([]profileModel.UserProfileModel, int64, error) {
	q := s.DB.Model(&profileModel.UserProfileModel{}).
		Where("is_verified = ? AND verification_progress = 100", false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung antrian verifikasi")
	}

	var profiles []profileModel.UserProfileModel
	if err := q.Order("updated_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&profiles).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil antrian verifikasi")
	}
	return profiles, total, nil
}

// VerifyProfile menandai profil terverifikasi. Hanya profil lengkap yang bisa.
func (s *ProfileService) VerifyProfile(targetUserID uuid.UUID) (*profileModel.UserProfileModel, error) {
	p, err := s.GetByUserID(targetUserID)
	if err != nil {
		return nil, err
	}
	if !p.IsComplete() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Profil belum lengkap, tidak bisa diverifikasi")
	}
	if p.IsVerified {
		return nil, fiber.NewError(fiber.StatusConflict, "Profil sudah terverifikasi")
	}
	p.IsVerified = true
	p.UpdatedAt = time.Now()
	if err := s.DB.Save(p).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memverifikasi profil")
	}
	return p, nil
}

// RevokeVerification mencabut status verifikasi.
func (s *ProfileService) RevokeVerification(targetUserID uuid.UUID) (*profileModel.UserProfileModel, error) {
	p, err := s.GetByUserID(targetUserID)
	if err != nil {
		return nil, err
	}
	if !p.IsVerified {
		return nil, fiber.NewError(fiber.StatusConflict, "Profil belum terverifikasi")
	}
	p.IsVerified = false
	if err := s.DB.Save(p).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mencabut verifikasi")
	}
	return p, nil
}
