package postgres

import "time"

type playerTableModel struct {
	ID                 string    `db:"id"`
	ClubID             string    `db:"club_id"`
	Name               string    `db:"name"`
	Position           string    `db:"position"`
	PriceCents         int64     `db:"price_cents"`
	Status             string    `db:"status"`
	LastVariationCents int64     `db:"last_variation_cents"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	ID         string `db:"id"`
	ClubID     string `db:"club_id"`
	Name       string `db:"name"`
	Position   string `db:"position"`
	PriceCents int64  `db:"price_cents"`
	Status     string `db:"status"`
}
