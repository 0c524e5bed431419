package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/competitions/competition/dto"
	competitionService "lombaku_backend/internals/features/competitions/competition/service"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
)

type CompetitionController struct {
	DB       *gorm.DB
	Service  *competitionService.CompetitionService
	validate *validator.Validate
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{
		DB:       db,
		Service:  competitionService.NewCompetitionService(db),
		validate: validator.New(),
	}
}

/* =======================
   Publik / user
======================= */

// GET /api/u/competitions?kategori=&jenis=&page=
// Untuk request ber-token, tiap item diberi status eligibility dasar user.
func (ctrl *CompetitionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	filter := competitionService.ListFilter{
		Kategori: c.Query("kategori"),
		Jenis:    c.Query("jenis"),
	}

	comps, total, err := ctrl.Service.List(filter, paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	profile := ctrl.currentProfile(c)

	items := make([]dto.CompetitionResponse, 0, len(comps))
	for i := range comps {
		resp := dto.ToCompetitionResponse(&comps[i], now)
		ok, reason := competitionService.CheckEligibility(profile, &comps[i], now, false)
		resp.IsEligible = &ok
		resp.EligibilityReason = &reason
		items = append(items, resp)
	}
	return helper.JsonList(c, "OK", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/u/competitions/:id
func (ctrl *CompetitionController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}
	comp, err := ctrl.Service.GetByID(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	now := time.Now()
	resp := dto.ToCompetitionResponse(comp, now)
	ok, reason := competitionService.CheckEligibility(ctrl.currentProfile(c), comp, now, false)
	resp.IsEligible = &ok
	resp.EligibilityReason = &reason
	return helper.JsonOK(c, "OK", resp)
}

// GET /api/u/competitions/:id/eligibility
// Cek syarat penuh (termasuk verifikasi admin) sebelum user menekan daftar.
func (ctrl *CompetitionController) CheckMyEligibility(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}
	comp, err := ctrl.Service.GetByID(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ok, reason := competitionService.CheckEligibility(ctrl.currentProfile(c), comp, time.Now(), true)
	return helper.JsonOK(c, "OK", fiber.Map{
		"is_eligible": ok,
		"reason":      reason,
	})
}

// currentProfile: profil user dari token, nil bila tak ada token/profil.
func (ctrl *CompetitionController) currentProfile(c *fiber.Ctx) *profileModel.UserProfileModel {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil
	}
	var p profileModel.UserProfileModel
	if err := ctrl.DB.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil
	}
	return &p
}

/* =======================
   Admin
======================= */

// POST /api/a/competitions
func (ctrl *CompetitionController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	comp, err := ctrl.Service.Create(&req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Kompetisi dibuat", dto.ToCompetitionResponse(comp, time.Now()))
}

// PUT /api/a/competitions/:id
func (ctrl *CompetitionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}

	var req dto.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	comp, err := ctrl.Service.Update(id, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Kompetisi diperbarui", dto.ToCompetitionResponse(comp, time.Now()))
}

// DELETE /api/a/competitions/:id
func (ctrl *CompetitionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id kompetisi tidak valid")
	}
	if err := ctrl.Service.Delete(id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Kompetisi dihapus", nil)
}
