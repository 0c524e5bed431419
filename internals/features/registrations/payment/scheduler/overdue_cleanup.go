package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"lombaku_backend/internals/features/registrations/payment/service"
)

// StartOverdueCleanupScheduler menolak pembayaran pending yang melewati batas
// 24 jam beserta registrasinya. Berjalan tiap jam (bisa diubah lewat env
// PAYMENT_CLEANUP_INTERVAL_MINUTES).
func StartOverdueCleanupScheduler(db *gorm.DB) {
	go func() {
		intervalMinutes := 60
		if val := os.Getenv("PAYMENT_CLEANUP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMinutes = parsed
			}
		}

		svc := service.NewPaymentService(db)
		for {
			log.Println("[CLEANUP] Menjalankan pembersihan pembayaran kedaluwarsa...")

			cleaned, err := svc.CleanupOverdue(time.Now())
			if err != nil {
				log.Printf("[CLEANUP ERROR] Gagal membersihkan pembayaran kedaluwarsa: %v", err)
			} else if cleaned > 0 {
				log.Printf("[CLEANUP] %d registrasi kedaluwarsa ditolak", cleaned)
			} else {
				log.Println("[CLEANUP] Tidak ada registrasi yang melewati batas pembayaran")
			}

			time.Sleep(time.Duration(intervalMinutes) * time.Minute)
		}
	}()
}
