package model

import "time"

// UserOTP : одноразовый код подтверждения email
// Инвариант: не больше одного активного (неиспользованного и непросроченного) кода на email
type UserOTP struct {
	ID        int64     `db:"id" json:"-"`
	Email     string    `db:"email" json:"email"`
	OTPCode   string    `db:"otp_code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (o *UserOTP) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
