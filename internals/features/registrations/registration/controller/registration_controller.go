package controller

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/registrations/registration/dto"
	registrationService "lombaku_backend/internals/features/registrations/registration/service"
	helper "lombaku_backend/internals/helpers"
	"lombaku_backend/internals/helpers/oss"
)

type RegistrationController struct {
	Service  *registrationService.RegistrationService
	validate *validator.Validate

	ossOnce sync.Once
	ossSvc  *oss.OSSService
	ossErr  error
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{
		Service:  registrationService.NewRegistrationService(db),
		validate: validator.New(),
	}
}

func (ctrl *RegistrationController) oss() (*oss.OSSService, error) {
	ctrl.ossOnce.Do(func() {
		ctrl.ossSvc, ctrl.ossErr = oss.NewOSSServiceFromEnv("")
	})
	if ctrl.ossErr != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file sedang tidak tersedia")
	}
	return ctrl.ossSvc, nil
}

// POST /api/u/registrations — daftar lomba individu.
// Multipart: competition_id, google_drive_link (lomba kreatif/performa),
// file (lomba akademik).
func (ctrl *RegistrationController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RegisterIndividualRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	comp, err := ctrl.Service.CheckPreconditions(userID, req.CompetitionID, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Upload submission hanya setelah seluruh precondition lolos.
	var fileURL *string
	if comp.RequiresFileUpload() {
		fh, err := c.FormFile("file")
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Lomba ini mewajibkan file submission")
		}
		if !comp.IsFileAllowed(fh.Filename) {
			return helper.Error(c, fiber.StatusBadRequest,
				fmt.Sprintf("Tipe file tidak diizinkan, gunakan: %v", []string(comp.AllowedFileTypes)))
		}
		if fh.Size > int64(comp.MaxFileSizeMB)*1024*1024 {
			return helper.Error(c, fiber.StatusBadRequest,
				fmt.Sprintf("Ukuran file maksimal %d MB", comp.MaxFileSizeMB))
		}

		svc, err := ctrl.oss()
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		url, err := svc.UploadDocumentToDir(c.Context(), "submissions", fh)
		if err != nil {
			log.Printf("❌ Upload submission gagal: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengunggah file submission")
		}
		fileURL = &url
	}

	reg, err := ctrl.Service.RegisterIndividual(userID, comp, fileURL, req.GoogleDriveLink, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil, segera selesaikan pembayaran dalam 24 jam",
		dto.ToRegistrationResponse(reg))
}

// GET /api/u/registrations
func (ctrl *RegistrationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regs, err := ctrl.Service.ListMine(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, dto.ToRegistrationResponse(&regs[i]))
	}
	return helper.JsonOK(c, "OK", items)
}

// GET /api/u/registrations/:id
func (ctrl *RegistrationController) Detail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	reg, err := ctrl.Service.GetByID(regID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if reg.UserID != userID && !helper.IsAdminFromToken(c) {
		return helper.Error(c, fiber.StatusForbidden, "Registrasi ini bukan milik Anda")
	}
	return helper.JsonOK(c, "OK", dto.ToRegistrationResponse(reg))
}

// GET /api/a/competitions/:id/registrations?status=
func (ctrl *RegistrationController) ListByCompetition(c *fiber.Ctx) error {
	compID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}
	regs, err := ctrl.Service.ListByCompetition(compID, c.Query("status"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, dto.ToRegistrationResponse(&regs[i]))
	}
	return helper.JsonOK(c, "OK", items)
}
