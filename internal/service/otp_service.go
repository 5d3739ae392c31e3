package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/ports"
)

const otpTTL = 10 * time.Minute

type OTPService struct {
	otpRepository  ports.OTPRepository
	userRepository ports.UserRepository
	mailer         ports.EmailSender
}

func NewOTPService(otpRepository ports.OTPRepository, userRepository ports.UserRepository, mailer ports.EmailSender) *OTPService {
	return &OTPService{
		otpRepository:  otpRepository,
		userRepository: userRepository,
		mailer:         mailer,
	}
}

// Generate : создаёт 6-значный код, перезаписывая прежний для этого email,
// и отправляет его письмом. Уже зарегистрированный email отклоняется
func (s *OTPService) Generate(ctx context.Context, email string) (string, error) {
	exists, err := s.userRepository.EmailExists(ctx, email)
	if err != nil {
		return "", apperror.DatabaseConnection(err)
	}
	if exists {
		return "", apperror.Validation("Email already exists")
	}

	code, err := generateOTPCode()
	if err != nil {
		return "", apperror.DatabaseConnection(err)
	}

	otp := &model.UserOTP{
		Email:     email,
		OTPCode:   code,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	if err := s.otpRepository.Upsert(ctx, otp); err != nil {
		return "", apperror.DatabaseConnection(err)
	}

	body := fmt.Sprintf("Your OTP code is %s. It is valid for 10 minutes.", code)
	if err := s.mailer.Send(email, "Your OTP Code", body); err != nil {
		return "", apperror.DatabaseConnection(err)
	}

	log.Printf("[OTPService] код для %s сгенерирован и отправлен", email)
	return code, nil
}

// Verify : проверяет пару (email, code); совпавший код помечается
// использованным и повторно не принимается
func (s *OTPService) Verify(ctx context.Context, email, code string) error {
	otp, err := s.otpRepository.FindUnused(ctx, email, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.OTPInvalid()
		}
		return apperror.DatabaseConnection(err)
	}

	if otp.Expired(time.Now()) {
		return apperror.OTPExpired()
	}

	if err := s.otpRepository.MarkUsed(ctx, otp.ID); err != nil {
		return apperror.OTPInvalid()
	}

	return nil
}

// Sweep : удаляет просроченные коды независимо от used
func (s *OTPService) Sweep(ctx context.Context) error {
	deleted, err := s.otpRepository.DeleteExpired(ctx)
	if err != nil {
		return apperror.DatabaseConnection(err)
	}
	if deleted > 0 {
		log.Printf("[OTPService] удалено просроченных кодов: %d", deleted)
	}
	return nil
}

// RunSweeper : периодическая чистка просроченных кодов до отмены контекста
func (s *OTPService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Printf("[OTPService] ошибка чистки кодов: %v", err)
			}
		}
	}
}

// generateOTPCode : криптослучайный 6-значный код
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
