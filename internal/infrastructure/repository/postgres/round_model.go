package postgres

import (
	"database/sql"
	"time"
)

type roundTableModel struct {
	ID            string       `db:"id"`
	Name          string       `db:"name"`
	RoundType     string       `db:"round_type"`
	Leg           string       `db:"leg"`
	MarketCloseAt time.Time    `db:"market_close_at"`
	EndsAt        sql.NullTime `db:"ends_at"`
	Finished      bool         `db:"finished"`
}

type matchTableModel struct {
	ID         string        `db:"id"`
	RoundID    string        `db:"round_id"`
	HomeClubID string        `db:"home_club_id"`
	AwayClubID string        `db:"away_club_id"`
	KickoffAt  sql.NullTime  `db:"kickoff_at"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
}

func toNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(v sql.NullTime) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return v.Time.UTC()
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
