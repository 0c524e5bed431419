package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	registrationDTO "lombaku_backend/internals/features/registrations/registration/dto"
	"lombaku_backend/internals/features/registrations/team/dto"
	teamService "lombaku_backend/internals/features/registrations/team/service"
	helper "lombaku_backend/internals/helpers"
)

type TeamController struct {
	Service  *teamService.TeamService
	validate *validator.Validate
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		Service:  teamService.NewTeamService(db),
		validate: validator.New(),
	}
}

// POST /api/u/teams
func (ctrl *TeamController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	team, err := ctrl.Service.CreateTeam(userID, &req, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := ctrl.Service.BuildTeamResponse(team)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Tim dibuat", resp)
}

// GET /api/u/teams
func (ctrl *TeamController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	teams, err := ctrl.Service.ListMyTeams(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	items := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		resp, err := ctrl.Service.BuildTeamResponse(&teams[i])
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		items = append(items, resp)
	}
	return helper.JsonOK(c, "OK", items)
}

// GET /api/u/teams/:id
func (ctrl *TeamController) Detail(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tim tidak valid")
	}
	team, err := ctrl.Service.GetTeam(teamID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	resp, err := ctrl.Service.BuildTeamResponse(team)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", resp)
}

// POST /api/u/teams/:id/members
func (ctrl *TeamController) AddMember(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tim tidak valid")
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	member, err := ctrl.Service.AddMember(userID, teamID, &req, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Anggota ditambahkan", member)
}

// DELETE /api/u/teams/:id/members/:user_id
func (ctrl *TeamController) RemoveMember(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tim tidak valid")
	}
	memberID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	if err := ctrl.Service.RemoveMember(userID, teamID, memberID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Anggota dikeluarkan", nil)
}

// GET /api/u/teams/:id/completeness
func (ctrl *TeamController) Completeness(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tim tidak valid")
	}
	readiness, err := ctrl.Service.CheckCompleteness(teamID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", readiness)
}

// POST /api/u/teams/:id/register
func (ctrl *TeamController) Register(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tim tidak valid")
	}

	reg, err := ctrl.Service.RegisterTeam(userID, teamID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Tim terdaftar, segera selesaikan pembayaran dalam 24 jam",
		registrationDTO.ToRegistrationResponse(reg))
}
