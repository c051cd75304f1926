package models

type Admin struct {
	ID           int64   `db:"id"`
	TelegramID   int64   `db:"telegram_id"`
	Username     *string `db:"username"`
	Email        *string `db:"email"`
	IsSuperAdmin bool    `db:"is_super_admin"`
}
