package postgres

type playerScoreTableModel struct {
	RoundID  string `db:"round_id"`
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	ClubID   string `db:"club_id"`
	Points   int64  `db:"points"`
	Played   bool   `db:"played"`
	Goals    int    `db:"goals"`
	Assists  int    `db:"assists"`
	Yellow   int    `db:"yellow"`
	Red      int    `db:"red"`
}

type teamScoreTableModel struct {
	RoundID string `db:"round_id"`
	TeamID  string `db:"team_id"`
	Points  int64  `db:"points"`
}
