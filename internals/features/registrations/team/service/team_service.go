package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	eligibilityService "lombaku_backend/internals/features/competitions/competition/service"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
	"lombaku_backend/internals/features/registrations/team/dto"
	teamModel "lombaku_backend/internals/features/registrations/team/model"
	authModel "lombaku_backend/internals/features/users/auth/model"
	profileModel "lombaku_backend/internals/features/users/profile/model"
	helper "lombaku_backend/internals/helpers"
)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

/* =======================
   Query
======================= */

func (s *TeamService) GetTeam(teamID uuid.UUID) (*teamModel.TeamModel, error) {
	var team teamModel.TeamModel
	if err := s.DB.Preload("Members").First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Tim tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data tim")
	}
	return &team, nil
}

// ListMyTeams: semua tim di mana user tergabung (kapten maupun anggota).
func (s *TeamService) ListMyTeams(userID uuid.UUID) ([]teamModel.TeamModel, error) {
	var teams []teamModel.TeamModel
	err := s.DB.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Preload("Members").
		Find(&teams).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar tim")
	}
	return teams, nil
}

// BuildTeamResponse melengkapi response dengan nama & sekolah tiap anggota.
func (s *TeamService) BuildTeamResponse(team *teamModel.TeamModel) (dto.TeamResponse, error) {
	resp := dto.ToTeamResponse(team)

	profiles, err := s.profilesByUserID(memberUserIDs(team))
	if err != nil {
		return resp, err
	}
	for i := range resp.Members {
		if p, ok := profiles[resp.Members[i].UserID]; ok {
			if p.NamaLengkap != nil {
				resp.Members[i].NamaLengkap = *p.NamaLengkap
			}
			if p.Sekolah != nil {
				resp.Members[i].Sekolah = *p.Sekolah
			}
		}
	}
	return resp, nil
}

/* =======================
   Pembentukan tim
======================= */

// CreateTeam membuat tim baru dengan pembuat sebagai kapten sekaligus anggota
// pertama. Kapten harus lolos syarat pendaftaran penuh (profil lengkap +
// terverifikasi) sebelum boleh membuka tim.
func (s *TeamService) CreateTeam(captainID uuid.UUID, req *dto.CreateTeamRequest, now time.Time) (*teamModel.TeamModel, error) {
	comp, err := s.findCompetition(req.CompetitionID)
	if err != nil {
		return nil, err
	}
	if !comp.IsTeamCategory() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kompetisi ini bukan kategori tim")
	}

	profile, err := s.findProfile(captainID)
	if err != nil {
		return nil, err
	}
	if ok, reason := eligibilityService.CheckEligibility(profile, comp, now, true); !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, reason)
	}

	team := teamModel.TeamModel{
		NamaTim:       req.NamaTim,
		CompetitionID: comp.ID,
		CaptainID:     captainID,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Nama tim sudah dipakai di kompetisi ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tim")
		}
		captain := teamModel.TeamMemberModel{
			TeamID:        team.ID,
			UserID:        captainID,
			CompetitionID: comp.ID,
			Posisi:        constants.PosisiCaptain,
		}
		if err := tx.Create(&captain).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Anda sudah tergabung di tim lain pada kompetisi ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mendaftarkan kapten")
		}
		team.Members = append(team.Members, captain)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &team, nil
}

// AddMember menambahkan anggota (dicari lewat email) ke tim milik kapten.
// Calon anggota harus lolos syarat dasar kompetisi (profil lengkap, kelas
// dalam rentang, pendaftaran masih buka) — verifikasi admin baru dituntut
// saat tim mendaftar, bukan saat bergabung.
//
// Aturan sekolah asimetris mengikuti portal lama: calon anggota wajib sudah
// mengisi sekolah dan harus sama dengan sekolah kapten; bila kapten sendiri
// belum mengisi sekolah, penambahan ditolak sampai profil kapten beres.
func (s *TeamService) AddMember(captainID, teamID uuid.UUID, req *dto.AddMemberRequest, now time.Time) (*teamModel.TeamMemberModel, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if team.CaptainID != captainID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya kapten yang dapat mengelola anggota tim")
	}
	if req.Posisi == constants.PosisiCaptain {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tim hanya memiliki satu kapten")
	}
	if err := s.ensureNotRegistered(teamID); err != nil {
		return nil, err
	}

	comp, err := s.findCompetition(team.CompetitionID)
	if err != nil {
		return nil, err
	}
	if comp.MaxAnggota != nil && team.MemberCount() >= *comp.MaxAnggota {
		return nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Tim sudah penuh (maksimal %d anggota)", *comp.MaxAnggota))
	}

	var user authModel.UserModel
	if err := s.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User dengan email tersebut tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mencari user")
	}
	if team.HasMember(user.ID) {
		return nil, fiber.NewError(fiber.StatusConflict, "User sudah menjadi anggota tim ini")
	}

	candidate, err := s.findProfile(user.ID)
	if err != nil {
		return nil, err
	}
	if ok, reason := eligibilityService.CheckEligibility(candidate, comp, now, false); !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Calon anggota tidak memenuhi syarat: "+reason)
	}

	captainProfile, err := s.findProfile(captainID)
	if err != nil {
		return nil, err
	}
	if captainProfile == nil || captainProfile.Sekolah == nil || strings.TrimSpace(*captainProfile.Sekolah) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Lengkapi sekolah pada profil kapten terlebih dahulu")
	}
	if candidate.Sekolah == nil || !strings.EqualFold(strings.TrimSpace(*candidate.Sekolah), strings.TrimSpace(*captainProfile.Sekolah)) {
		return nil, fiber.NewError(fiber.StatusConflict, "Semua anggota tim harus berasal dari sekolah yang sama")
	}

	posisi := req.Posisi
	if posisi == "" {
		posisi = constants.PosisiPlayer
	}
	member := teamModel.TeamMemberModel{
		TeamID:        teamID,
		UserID:        user.ID,
		CompetitionID: team.CompetitionID,
		Posisi:        posisi,
	}
	if err := s.DB.Create(&member).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, fiber.NewError(fiber.StatusConflict, "User sudah tergabung di tim lain pada kompetisi ini")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menambahkan anggota")
	}
	return &member, nil
}

// RemoveMember mengeluarkan anggota dari tim. Kapten tidak dapat dikeluarkan;
// bubarkan tim bila kapten ingin keluar.
func (s *TeamService) RemoveMember(captainID, teamID, memberUserID uuid.UUID) error {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return err
	}
	if team.CaptainID != captainID {
		return fiber.NewError(fiber.StatusForbidden, "Hanya kapten yang dapat mengelola anggota tim")
	}
	if memberUserID == team.CaptainID {
		return fiber.NewError(fiber.StatusConflict, "Kapten tidak dapat dikeluarkan dari tim")
	}
	if err := s.ensureNotRegistered(teamID); err != nil {
		return err
	}
	if !team.HasMember(memberUserID) {
		return fiber.NewError(fiber.StatusNotFound, "User bukan anggota tim ini")
	}

	res := s.DB.Where("team_id = ? AND user_id = ?", teamID, memberUserID).
		Delete(&teamModel.TeamMemberModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengeluarkan anggota")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User bukan anggota tim ini")
	}
	return nil
}

/* =======================
   Kesiapan & registrasi tim
======================= */

// CheckCompleteness mengumpulkan seluruh masalah yang menghalangi tim untuk
// mendaftar: jumlah anggota, kelengkapan profil tiap anggota, dan keseragaman
// sekolah satu tim penuh (bukan hanya terhadap kapten).
func (s *TeamService) CheckCompleteness(teamID uuid.UUID) (*dto.TeamCompletenessResponse, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	comp, err := s.findCompetition(team.CompetitionID)
	if err != nil {
		return nil, err
	}

	problems := []string{}
	if comp.MinAnggota != nil && team.MemberCount() < *comp.MinAnggota {
		problems = append(problems,
			fmt.Sprintf("Anggota tim kurang: %d dari minimal %d", team.MemberCount(), *comp.MinAnggota))
	}

	profiles, err := s.profilesByUserID(memberUserIDs(team))
	if err != nil {
		return nil, err
	}

	schools := map[string]bool{}
	for _, m := range team.Members {
		p, ok := profiles[m.UserID]
		if !ok || !p.IsComplete() {
			label := m.UserID.String()
			if ok && p.NamaLengkap != nil {
				label = *p.NamaLengkap
			}
			problems = append(problems, fmt.Sprintf("Profil anggota %s belum lengkap", label))
			continue
		}
		if !p.IsGradeEligible(comp.MinKelas, comp.MaxKelas) {
			problems = append(problems,
				fmt.Sprintf("Kelas anggota %s di luar rentang %d-%d", *p.NamaLengkap, comp.MinKelas, comp.MaxKelas))
		}
		schools[strings.ToLower(strings.TrimSpace(*p.Sekolah))] = true
	}
	if len(schools) > 1 {
		problems = append(problems, "Semua anggota tim harus berasal dari sekolah yang sama")
	}

	return &dto.TeamCompletenessResponse{
		IsComplete: len(problems) == 0,
		Problems:   problems,
	}, nil
}

// RegisterTeam mendaftarkan tim ke kompetisinya. Harga dikunci per instant
// registrasi dan jumlah tagihan = harga terkunci x jumlah anggota.
func (s *TeamService) RegisterTeam(captainID, teamID uuid.UUID, now time.Time) (*registrationModel.RegistrationModel, error) {
	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	if team.CaptainID != captainID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya kapten yang dapat mendaftarkan tim")
	}

	comp, err := s.findCompetition(team.CompetitionID)
	if err != nil {
		return nil, err
	}
	if !comp.IsRegistrationOpen(now) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Pendaftaran kompetisi sudah ditutup")
	}

	readiness, err := s.CheckCompleteness(teamID)
	if err != nil {
		return nil, err
	}
	if !readiness.IsComplete {
		return nil, fiber.NewError(fiber.StatusBadRequest, strings.Join(readiness.Problems, "; "))
	}
	if !comp.ValidateTeamSize(team.MemberCount()) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Jumlah anggota tim di luar batas kompetisi")
	}

	locked := comp.LockedPriceAt(now)
	registration := registrationModel.RegistrationModel{
		UserID:            captainID,
		CompetitionID:     comp.ID,
		TeamID:            &teamID,
		JenisRegistrasi:   constants.KategoriTeam,
		Status:            constants.RegStatusPending,
		HargaTerkunci:     locked,
		TanggalRegistrasi: now,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Tim sudah terdaftar di kompetisi ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat registrasi tim")
		}
		payment := paymentModel.PaymentModel{
			RegistrationID: registration.ID,
			Jumlah:         locked * team.MemberCount(),
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
   Helper internal
======================= */

func (s *TeamService) findCompetition(id uuid.UUID) (*competitionModel.CompetitionModel, error) {
	var comp competitionModel.CompetitionModel
	if err := s.DB.First(&comp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data kompetisi")
	}
	return &comp, nil
}

// findProfile mengembalikan nil tanpa error bila user belum punya profil.
func (s *TeamService) findProfile(userID uuid.UUID) (*profileModel.UserProfileModel, error) {
	var p profileModel.UserProfileModel
	if err := s.DB.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}
	return &p, nil
}

func (s *TeamService) profilesByUserID(userIDs []uuid.UUID) (map[uuid.UUID]*profileModel.UserProfileModel, error) {
	out := make(map[uuid.UUID]*profileModel.UserProfileModel, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var profiles []profileModel.UserProfileModel
	if err := s.DB.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil anggota")
	}
	for i := range profiles {
		out[profiles[i].UserID] = &profiles[i]
	}
	return out, nil
}

// ensureNotRegistered menolak perubahan komposisi tim setelah tim terdaftar.
func (s *TeamService) ensureNotRegistered(teamID uuid.UUID) error {
	var count int64
	if err := s.DB.Model(&registrationModel.RegistrationModel{}).
		Where("team_id = ?", teamID).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa status registrasi tim")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "Tim sudah terdaftar, komposisi anggota tidak dapat diubah")
	}
	return nil
}

func memberUserIDs(team *teamModel.TeamModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(team.Members))
	for _, m := range team.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
