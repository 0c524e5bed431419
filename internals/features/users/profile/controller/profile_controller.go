package controller

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/users/profile/dto"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	profileService "lombaku_backend/internals/features/users/profile/service"
	helper "lombaku_backend/internals/helpers"
	"lombaku_backend/internals/helpers/oss"
)

type ProfileController struct {
	Service  *profileService.ProfileService
	validate *validator.Validate

	ossOnce sync.Once
	ossSvc  *oss.OSSService
	ossErr  error
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{
		Service:  profileService.NewProfileService(db),
		validate: validator.New(),
	}
}

// OSS client dibuat malas: endpoint non-upload tetap jalan tanpa kredensial OSS.
func (ctrl *ProfileController) oss() (*oss.OSSService, error) {
	ctrl.ossOnce.Do(func() {
		ctrl.ossSvc, ctrl.ossErr = oss.NewOSSServiceFromEnv("")
	})
	if ctrl.ossErr != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file sedang tidak tersedia")
	}
	return ctrl.ossSvc, nil
}

// GET /api/u/profile
func (ctrl *ProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctrl.Service.GetByUserID(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToProfileResponse(p))
}

// PUT /api/u/profile — upsert, partial update.
func (ctrl *ProfileController) SaveMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SaveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := ctrl.Service.SaveProfile(userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profil tersimpan", dto.ToProfileResponse(p))
}

// GET /api/u/profile/missing-fields
func (ctrl *ProfileController) MissingFields(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctrl.Service.GetByUserID(userID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok && fe.Code == fiber.StatusNotFound {
			// Belum ada profil: semua field wajib masih kosong.
			empty := profileModel.UserProfileModel{UserID: userID}
			return helper.JsonOK(c, "OK", fiber.Map{
				"verification_progress": 0,
				"missing_fields":        empty.MissingFields(),
			})
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", fiber.Map{
		"verification_progress": p.CompletionPercentage(),
		"missing_fields":        p.MissingFields(),
	})
}

// POST /api/u/profile/documents/:jenis
// jenis: foto_kartu_pelajar | screenshot_twibbon. File dikonversi ke WebP
// sebelum naik ke OSS.
func (ctrl *ProfileController) UploadDocument(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	jenis := c.Params("jenis")
	if jenis != profileService.DocKartuPelajar && jenis != profileService.DocTwibbon {
		return helper.Error(c, fiber.StatusBadRequest, "Jenis dokumen tidak dikenal")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File wajib dilampirkan")
	}

	svc, err := ctrl.oss()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	url, err := svc.UploadAsWebP(c.Context(), fh, fmt.Sprintf("user_documents/%s", jenis))
	if err != nil {
		log.Printf("❌ Upload dokumen profil gagal: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Gagal mengunggah file, pastikan format gambar valid")
	}

	p, oldURL, err := ctrl.Service.SetDocumentURL(userID, jenis, url)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if oldURL != "" {
		if delErr := svc.DeleteByPublicURL(c.Context(), oldURL); delErr != nil {
			log.Printf("⚠️ Gagal hapus dokumen lama %s: %v", oldURL, delErr)
		}
	}

	return helper.JsonOK(c, "Dokumen tersimpan", dto.ToProfileResponse(p))
}
