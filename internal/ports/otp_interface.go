package ports

import (
	"context"

	"dms-web-server/internal/model"
)

// OTPRepository : SQL слой одноразовых кодов
type OTPRepository interface {
	Upsert(ctx context.Context, otp *model.UserOTP) error
	FindUnused(ctx context.Context, email, code string) (*model.UserOTP, error)
	MarkUsed(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type OTPService interface {
	Generate(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
	Sweep(ctx context.Context) error
}

// EmailSender : доставка кода на почту
type EmailSender interface {
	Send(to, subject, body string) error
}
