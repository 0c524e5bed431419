package service

import (
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"

	"lombaku_backend/internals/configs"
	"lombaku_backend/internals/features/registrations/payment/dto"
)

var snapClient snap.Client

// InitMidtrans menyiapkan client Snap. Kosongkan server key untuk
// menonaktifkan pembayaran gateway (mode transfer manual saja).
func InitMidtrans(serverKey string) {
	if serverKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY kosong, link pembayaran Midtrans dinonaktifkan")
		return
	}
	env := midtrans.Sandbox
	if configs.GetEnv("MIDTRANS_ENV", "sandbox") == "production" {
		env = midtrans.Production
	}
	snapClient.New(serverKey, env)
	log.Println("✅ Midtrans Snap client siap")
}

// CreateSnapLink membuat link pembayaran Midtrans untuk satu registrasi dan
// menyimpan payload-nya di kolom gateway_payload.
func (s *PaymentService) CreateSnapLink(userID, registrationID uuid.UUID, email string) (*dto.SnapLinkResponse, error) {
	if snapClient.ServerKey == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Pembayaran via Midtrans sedang tidak tersedia")
	}

	payment, reg, err := s.GetMine(userID, registrationID)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, fiber.NewError(fiber.StatusConflict, "Pembayaran sudah diproses")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  fmt.Sprintf("REG-%s", reg.ID.String()),
			GrossAmt: int64(payment.Jumlah),
		},
		CustomerDetail: &midtrans.CustomerDetails{Email: email},
	}

	resp, snapErr := snapClient.CreateTransaction(req)
	if snapErr != nil {
		log.Printf("❌ Midtrans CreateTransaction gagal: %v", snapErr.Error())
		return nil, fiber.NewError(fiber.StatusBadGateway, "Gagal membuat link pembayaran")
	}

	if raw, err := sonic.Marshal(resp); err == nil {
		payment.GatewayPayload = datatypes.JSON(raw)
		if err := s.DB.Save(payment).Error; err != nil {
			log.Printf("⚠️ Gagal menyimpan payload Midtrans: %v", err)
		}
	}

	return &dto.SnapLinkResponse{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}
