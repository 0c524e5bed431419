package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lombaku_backend/internals/features/users/profile/dto"
	helper "lombaku_backend/internals/helpers"
)

// GET /api/a/verifications — antrian profil lengkap yang menunggu verifikasi.
func (ctrl *ProfileController) ListAwaitingVerification(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	profiles, total, err := ctrl.Service.ListAwaitingVerification(paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, dto.ToProfileResponse(&profiles[i]))
	}
	return helper.JsonList(c, "OK", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /api/a/verifications/:user_id/approve
func (ctrl *ProfileController) Verify(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	p, err := ctrl.Service.VerifyProfile(targetID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profil terverifikasi", dto.ToProfileResponse(p))
}

// PATCH /api/a/verifications/:user_id/revoke
func (ctrl *ProfileController) Revoke(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	p, err := ctrl.Service.RevokeVerification(targetID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Verifikasi dicabut", dto.ToProfileResponse(p))
}
