package postgres

import "time"

type lineupTableModel struct {
	TeamID             string    `db:"team_id"`
	RoundID            string    `db:"round_id"`
	Scheme             string    `db:"scheme"`
	BalanceAtSaveCents int64     `db:"balance_at_save_cents"`
	SavedAt            time.Time `db:"saved_at"`
}

type lineupPlayerTableModel struct {
	TeamID    string `db:"team_id"`
	RoundID   string `db:"round_id"`
	PlayerID  string `db:"player_id"`
	Slot      int    `db:"slot"`
	IsCaptain bool   `db:"is_captain"`
}
