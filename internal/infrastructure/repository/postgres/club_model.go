package postgres

import "time"

type clubTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	ShieldURL string    `db:"shield_url"`
	GroupName string    `db:"group_name"`
	CreatedAt time.Time `db:"created_at"`
}

type clubInsertModel struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	ShieldURL string `db:"shield_url"`
	GroupName string `db:"group_name"`
}
