package controller

import (
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/features/registrations/payment/dto"
	paymentService "lombaku_backend/internals/features/registrations/payment/service"
	authModel "lombaku_backend/internals/features/users/auth/model"
	helper "lombaku_backend/internals/helpers"
	"lombaku_backend/internals/helpers/oss"
)

type PaymentController struct {
	DB       *gorm.DB
	Service  *paymentService.PaymentService
	validate *validator.Validate

	ossOnce sync.Once
	ossSvc  *oss.OSSService
	ossErr  error
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:       db,
		Service:  paymentService.NewPaymentService(db),
		validate: validator.New(),
	}
}

func (ctrl *PaymentController) oss() (*oss.OSSService, error) {
	ctrl.ossOnce.Do(func() {
		ctrl.ossSvc, ctrl.ossErr = oss.NewOSSServiceFromEnv("")
	})
	if ctrl.ossErr != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file sedang tidak tersedia")
	}
	return ctrl.ossSvc, nil
}

/* =======================
   Sisi user
======================= */

// POST /api/u/registrations/:id/payment/proof
// Multipart: file (gambar bukti transfer, dikonversi WebP), catatan_user.
func (ctrl *PaymentController) UploadProof(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var req dto.UploadProofRequest
	_ = c.BodyParser(&req) // catatan opsional, abaikan error parse form kosong
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Bukti pembayaran wajib dilampirkan")
	}

	svc, err := ctrl.oss()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	url, err := svc.UploadAsWebP(c.Context(), fh, "payment_proofs")
	if err != nil {
		log.Printf("❌ Upload bukti pembayaran gagal: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Gagal mengunggah bukti, pastikan format gambar valid")
	}

	payment, err := ctrl.Service.UploadProof(userID, regID, url, req.CatatanUser, time.Now())
	if err != nil {
		// Rollback objek yang terlanjur naik bila state machine menolak.
		if delErr := svc.DeleteByPublicURL(c.Context(), url); delErr != nil {
			log.Printf("⚠️ Gagal hapus bukti yatim %s: %v", url, delErr)
		}
		return helper.FromFiberError(c, err)
	}

	reg, _ := ctrl.registrationOf(regID)
	return helper.JsonOK(c, "Bukti pembayaran tersimpan, menunggu review admin",
		dto.ToPaymentResponse(payment, reg))
}

// PUT /api/u/registrations/:id/payment/proof — ganti bukti selama pending
// dan masih di dalam window 24 jam.
func (ctrl *PaymentController) EditProof(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var req dto.UploadProofRequest
	_ = c.BodyParser(&req)
	req.Sanitize()

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Bukti pembayaran baru wajib dilampirkan")
	}

	svc, err := ctrl.oss()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	url, err := svc.UploadAsWebP(c.Context(), fh, "payment_proofs")
	if err != nil {
		log.Printf("❌ Upload bukti pengganti gagal: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Gagal mengunggah bukti, pastikan format gambar valid")
	}

	payment, oldURL, err := ctrl.Service.EditProof(userID, regID, url, req.CatatanUser, time.Now())
	if err != nil {
		if delErr := svc.DeleteByPublicURL(c.Context(), url); delErr != nil {
			log.Printf("⚠️ Gagal hapus bukti yatim %s: %v", url, delErr)
		}
		return helper.FromFiberError(c, err)
	}
	if oldURL != "" {
		if delErr := svc.DeleteByPublicURL(c.Context(), oldURL); delErr != nil {
			log.Printf("⚠️ Gagal hapus bukti lama %s: %v", oldURL, delErr)
		}
	}

	reg, _ := ctrl.registrationOf(regID)
	return helper.JsonOK(c, "Bukti pembayaran diganti", dto.ToPaymentResponse(payment, reg))
}

// GET /api/u/registrations/:id/payment
func (ctrl *PaymentController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	payment, reg, err := ctrl.Service.GetMine(userID, regID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToPaymentResponse(payment, reg.TanggalRegistrasi))
}

// POST /api/u/registrations/:id/payment/snap — link pembayaran Midtrans.
func (ctrl *PaymentController) CreateSnapLink(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var user authModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	link, err := ctrl.Service.CreateSnapLink(userID, regID, user.Email)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Link pembayaran dibuat", link)
}

/* =======================
   Sisi admin
======================= */

// GET /api/a/payments/pending — antrian bukti menunggu review.
func (ctrl *PaymentController) ListAwaitingReview(c *fiber.Ctx) error {
	payments, err := ctrl.Service.ListAwaitingReview()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OK", payments)
}

// PATCH /api/a/registrations/:id/payment/approve
func (ctrl *PaymentController) Approve(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	payment, err := ctrl.Service.ApprovePayment(adminID, regID, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	reg, _ := ctrl.registrationOf(regID)
	return helper.JsonOK(c, "Pembayaran disetujui", dto.ToPaymentResponse(payment, reg))
}

// PATCH /api/a/registrations/:id/payment/reject
func (ctrl *PaymentController) Reject(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	regID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id registrasi tidak valid")
	}

	var req dto.RejectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	req.Sanitize()
	if err := ctrl.validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, err := ctrl.Service.RejectPayment(adminID, regID, req.CatatanAdmin, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	reg, _ := ctrl.registrationOf(regID)
	return helper.JsonOK(c, "Pembayaran ditolak", dto.ToPaymentResponse(payment, reg))
}

// POST /api/a/payments/cleanup-overdue — jalankan pembersihan manual.
// Scheduler menjalankan hal yang sama tiap jam.
func (ctrl *PaymentController) CleanupOverdue(c *fiber.Ctx) error {
	cleaned, err := ctrl.Service.CleanupOverdue(time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Pembersihan selesai", fiber.Map{"rejected": cleaned})
}

// registrationOf: ambil tanggal registrasi untuk menghitung batas bayar di
// response. Kegagalan di sini tidak menggagalkan operasi utama.
func (ctrl *PaymentController) registrationOf(regID uuid.UUID) (time.Time, error) {
	var row struct{ TanggalRegistrasi time.Time }
	err := ctrl.DB.Table("registrations").
		Select("tanggal_registrasi").
		Where("id = ?", regID).
		Scan(&row).Error
	return row.TanggalRegistrasi, err
}
