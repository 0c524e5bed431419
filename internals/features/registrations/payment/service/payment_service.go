package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lombaku_backend/internals/constants"
	paymentModel "lombaku_backend/internals/features/registrations/payment/model"
	registrationModel "lombaku_backend/internals/features/registrations/registration/model"
)

// Catatan sistem saat pembayaran hangus karena melewati batas 24 jam.
const overdueNote = "Otomatis ditolak karena melewati batas waktu pembayaran 24 jam"

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// paymentWithRegistration memuat pembayaran beserta registrasi induknya.
// Registrasi dibutuhkan hampir di semua operasi: pemilik, deadline, cascade.
func (s *PaymentService) paymentWithRegistration(registrationID uuid.UUID) (*paymentModel.PaymentModel, *registrationModel.RegistrationModel, error) {
	var reg registrationModel.RegistrationModel
	if err := s.DB.Preload("Payment").First(&reg, "id = ?", registrationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil registrasi")
	}
	if reg.Payment == nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Tagihan pembayaran tidak ditemukan")
	}
	return reg.Payment, &reg, nil
}

/* =======================
   Sisi user
======================= */

// UploadProof mencatat bukti pembayaran pertama. proofURL sudah berupa URL
// publik hasil upload ke OSS.
func (s *PaymentService) UploadProof(userID, registrationID uuid.UUID, proofURL string, catatan *string, now time.Time) (*paymentModel.PaymentModel, error) {
	payment, reg, err := s.paymentWithRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Registrasi ini bukan milik Anda")
	}
	if !payment.IsPending() {
		return nil, fiber.NewError(fiber.StatusConflict, "Pembayaran sudah diproses admin")
	}
	if payment.HasProof() {
		return nil, fiber.NewError(fiber.StatusConflict, "Bukti pembayaran sudah ada, gunakan fitur ganti bukti")
	}
	if now.After(reg.PaymentDeadline()) {
		return nil, fiber.NewError(fiber.StatusGone, "Batas waktu pembayaran 24 jam sudah lewat")
	}

	payment.BuktiPembayaran = &proofURL
	payment.CatatanUser = catatan
	payment.TanggalUpload = &now
	if err := s.DB.Save(payment).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan bukti pembayaran")
	}
	return payment, nil
}

// EditProof mengganti bukti pembayaran selama masih bisa dimodifikasi.
// Mengembalikan URL bukti lama agar controller bisa menghapus objek OSS-nya.
func (s *PaymentService) EditProof(userID, registrationID uuid.UUID, newProofURL string, catatan *string, now time.Time) (*paymentModel.PaymentModel, string, error) {
	payment, reg, err := s.paymentWithRegistration(registrationID)
	if err != nil {
		return nil, "", err
	}
	if reg.UserID != userID {
		return nil, "", fiber.NewError(fiber.StatusForbidden, "Registrasi ini bukan milik Anda")
	}
	if !payment.IsPending() {
		return nil, "", fiber.NewError(fiber.StatusConflict, "Pembayaran sudah diproses admin, bukti tidak dapat diganti")
	}
	if !payment.HasProof() {
		return nil, "", fiber.NewError(fiber.StatusConflict, "Belum ada bukti pembayaran untuk diganti")
	}
	if !payment.CanBeModified(reg.TanggalRegistrasi, now) {
		return nil, "", fiber.NewError(fiber.StatusGone, "Batas waktu pembayaran 24 jam sudah lewat")
	}

	oldURL := *payment.BuktiPembayaran
	payment.BuktiPembayaran = &newProofURL
	if catatan != nil {
		payment.CatatanUser = catatan
	}
	payment.TanggalUpload = &now
	if err := s.DB.Save(payment).Error; err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal mengganti bukti pembayaran")
	}
	return payment, oldURL, nil
}

// GetMine: pembayaran milik satu registrasi, dengan cek kepemilikan.
func (s *PaymentService) GetMine(userID, registrationID uuid.UUID) (*paymentModel.PaymentModel, *registrationModel.RegistrationModel, error) {
	payment, reg, err := s.paymentWithRegistration(registrationID)
	if err != nil {
		return nil, nil, err
	}
	if reg.UserID != userID {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "Registrasi ini bukan milik Anda")
	}
	return payment, reg, nil
}

/* =======================
   Sisi admin
======================= */

// ListAwaitingReview: pembayaran pending yang buktinya sudah diunggah.
func (s *PaymentService) ListAwaitingReview() ([]paymentModel.PaymentModel, error) {
	var payments []paymentModel.PaymentModel
	err := s.DB.
		Where("status = ? AND bukti_pembayaran IS NOT NULL", constants.PaymentStatusPending).
		Order("tanggal_upload ASC").
		Find(&payments).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil antrian pembayaran")
	}
	return payments, nil
}

// ApprovePayment menyetujui pembayaran sekaligus registrasinya dalam satu
// transaksi. Hanya pembayaran pending dengan bukti yang bisa disetujui.
func (s *PaymentService) ApprovePayment(adminID, registrationID uuid.UUID, now time.Time) (*paymentModel.PaymentModel, error) {
	payment, reg, err := s.paymentWithRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, fiber.NewError(fiber.StatusConflict, "Pembayaran sudah diproses")
	}
	if !payment.HasProof() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Belum ada bukti pembayaran untuk disetujui")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = constants.PaymentStatusApproved
		payment.ApprovedBy = &adminID
		payment.TanggalApproval = &now
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		reg.Status = constants.RegStatusApproved
		reg.TanggalApproval = &now
		reg.Payment = nil // hindari save ganda lewat asosiasi
		return tx.Save(reg).Error
	})
	if txErr != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyetujui pembayaran")
	}
	return payment, nil
}

// RejectPayment menolak pembayaran dengan catatan wajib, dan menolak
// registrasinya sekalian.
func (s *PaymentService) RejectPayment(adminID, registrationID uuid.UUID, catatanAdmin string, now time.Time) (*paymentModel.PaymentModel, error) {
	if catatanAdmin == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Catatan penolakan wajib diisi")
	}
	payment, reg, err := s.paymentWithRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, fiber.NewError(fiber.StatusConflict, "Pembayaran sudah diproses")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = constants.PaymentStatusRejected
		payment.ApprovedBy = &adminID
		payment.CatatanAdmin = &catatanAdmin
		payment.TanggalApproval = &now
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		reg.Status = constants.RegStatusRejected
		reg.Payment = nil
		return tx.Save(reg).Error
	})
	if txErr != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menolak pembayaran")
	}
	return payment, nil
}

// CleanupOverdue menolak semua pembayaran pending yang registrasinya sudah
// melewati batas 24 jam, berapapun buktinya — jam tidak berhenti karena bukti
// diunggah; admin yang lambat mereview ikut hangus. Pembayaran dan registrasi
// sama-sama jadi rejected dengan catatan sistem. Mengembalikan jumlah yang
// ditolak.
func (s *PaymentService) CleanupOverdue(now time.Time) (int64, error) {
	cutoff := now.Add(-constants.PaymentWindow)

	var regs []registrationModel.RegistrationModel
	err := s.DB.Preload("Payment").
		Where("status = ? AND tanggal_registrasi < ?", constants.RegStatusPending, cutoff).
		Find(&regs).Error
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa registrasi kedaluwarsa")
	}

	var cleaned int64
	for i := range regs {
		reg := &regs[i]
		if reg.Payment != nil && !reg.Payment.IsPending() {
			continue
		}
		note := overdueNote
		txErr := s.DB.Transaction(func(tx *gorm.DB) error {
			if reg.Payment != nil {
				reg.Payment.Status = constants.PaymentStatusRejected
				reg.Payment.CatatanAdmin = &note
				if err := tx.Save(reg.Payment).Error; err != nil {
					return err
				}
			}
			reg.Status = constants.RegStatusRejected
			reg.Payment = nil
			return tx.Save(reg).Error
		})
		if txErr != nil {
			return cleaned, fiber.NewError(fiber.StatusInternalServerError, "Gagal menolak registrasi kedaluwarsa")
		}
		cleaned++
	}
	return cleaned, nil
}
