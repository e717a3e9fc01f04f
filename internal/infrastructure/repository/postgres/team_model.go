package postgres

import "time"

type teamTableModel struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	CoachName    string    `db:"coach_name"`
	BadgeURL     string    `db:"badge_url"`
	BalanceCents int64     `db:"balance_cents"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
