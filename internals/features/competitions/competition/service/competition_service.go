package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/competitions/competition/dto"
	competitionModel "lombaku_backend/internals/features/competitions/competition/model"
	helper "lombaku_backend/internals/helpers"
)

type CompetitionService struct {
	DB *gorm.DB
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{DB: db}
}

func (s *CompetitionService) GetByID(id uuid.UUID) (*competitionModel.CompetitionModel, error) {
	var comp competitionModel.CompetitionModel
	if err := s.DB.First(&comp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kompetisi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data kompetisi")
	}
	return &comp, nil
}

type ListFilter struct {
	Kategori string
	Jenis    string
}

func (s *CompetitionService) List(filter ListFilter, paging helper.Paging) ([]competitionModel.CompetitionModel, int64, error) {
	q := s.DB.Model(&competitionModel.CompetitionModel{})
	if filter.Kategori != "" {
		q = q.Where("kategori = ?", filter.Kategori)
	}
	if filter.Jenis != "" {
		q = q.Where("jenis = ?", filter.Jenis)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung kompetisi")
	}

	var comps []competitionModel.CompetitionModel
	if err := q.Order("tanggal_kompetisi ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&comps).Error; err != nil {
		return nil, 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar kompetisi")
	}
	return comps, total, nil
}

// Create menolak konfigurasi jadwal/harga yang tidak konsisten sebelum insert.
func (s *CompetitionService) Create(req *dto.CreateCompetitionRequest) (*competitionModel.CompetitionModel, error) {
	comp := req.ToModel()
	if violations := comp.ValidateSchedule(); len(violations) > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, joinViolations(violations))
	}
	if comp.IsTeamCategory() {
		if comp.MinAnggota == nil || comp.MaxAnggota == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Kompetisi tim wajib mengisi min_anggota dan max_anggota")
		}
		if *comp.MinAnggota > *comp.MaxAnggota {
			return nil, fiber.NewError(fiber.StatusBadRequest, "min_anggota tidak boleh melebihi max_anggota")
		}
	}
	if err := s.DB.Create(comp).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kompetisi")
	}
	return comp, nil
}

// Update mengganti seluruh konfigurasi kompetisi (full replace) dengan
// validasi yang sama seperti create. Harga terkunci registrasi lama tidak
// terpengaruh perubahan harga.
func (s *CompetitionService) Update(id uuid.UUID, req *dto.CreateCompetitionRequest) (*competitionModel.CompetitionModel, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated := req.ToModel()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if violations := updated.ValidateSchedule(); len(violations) > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, joinViolations(violations))
	}
	if updated.IsTeamCategory() && (updated.MinAnggota == nil || updated.MaxAnggota == nil) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Kompetisi tim wajib mengisi min_anggota dan max_anggota")
	}

	if err := s.DB.Save(updated).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui kompetisi")
	}
	return updated, nil
}

// Delete: soft delete (gorm.DeletedAt). Registrasi yang sudah ada tetap utuh.
func (s *CompetitionService) Delete(id uuid.UUID) error {
	res := s.DB.Delete(&competitionModel.CompetitionModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus kompetisi")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kompetisi tidak ditemukan")
	}
	return nil
}

func joinViolations(violations []string) string {
	msg := violations[0]
	for _, v := range violations[1:] {
		msg += "; " + v
	}
	return msg
}
