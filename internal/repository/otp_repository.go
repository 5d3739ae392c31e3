package repository

import (
	"context"
	"database/sql"
	"errors"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/util"
)

type OTPRepository struct {
	*config.Database
}

func NewOTPRepository(database *config.Database) *OTPRepository {
	return &OTPRepository{database}
}

// Upsert : создаёт или перезаписывает код по email
// Гарантирует не больше одного активного кода на email
func (r *OTPRepository) Upsert(ctx context.Context, otp *model.UserOTP) error {
	query := `
	INSERT INTO user_otps (email, otp_code, expires_at, used)
	VALUES ($1, $2, $3, FALSE)
	ON CONFLICT (email) DO UPDATE
	SET otp_code = EXCLUDED.otp_code, expires_at = EXCLUDED.expires_at, used = FALSE, created_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query, otp.Email, otp.OTPCode, otp.ExpiresAt)
	if err != nil {
		return util.LogError("[OTPRepo] не удалось сохранить код", err)
	}
	return nil
}

// FindUnused : ищет неиспользованный код по паре (email, code)
func (r *OTPRepository) FindUnused(ctx context.Context, email, code string) (*model.UserOTP, error) {
	query := `
	SELECT id, email, otp_code, expires_at, used, created_at
	FROM user_otps
	WHERE email = $1 AND otp_code = $2 AND used = FALSE
	`

	var otp model.UserOTP
	err := r.DB.GetContext(ctx, &otp, query, email, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, util.LogError("[OTPRepo] ошибка поиска кода", err)
	}
	return &otp, nil
}

// MarkUsed : помечает код использованным
func (r *OTPRepository) MarkUsed(ctx context.Context, id int64) error {
	query := `UPDATE user_otps SET used = TRUE WHERE id = $1 AND used = FALSE`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[OTPRepo] не удалось обновить код", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[OTPRepo] не удалось проверить, обновлён ли код", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[OTPRepo] код уже был использован", sql.ErrNoRows)
	}

	return nil
}

// DeleteExpired : удаляет все просроченные коды независимо от used
func (r *OTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM user_otps WHERE expires_at < NOW()`)
	if err != nil {
		return 0, util.LogError("[OTPRepo] не удалось удалить просроченные коды", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[OTPRepo] не удалось посчитать удалённые коды", err)
	}
	return deleted, nil
}
