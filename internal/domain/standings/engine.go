package standings

import (
	"sort"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Row is one club's accumulated record.
type Row struct {
	Position       int
	ClubID         string
	ClubName       string
	Played         int
	Points         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
}

// Table is the ordered standings of one group. Group is empty for an
// ungrouped competition.
type Table struct {
	Group string
	Rows  []Row
}

// Recompute builds the tables from scratch. Only matches with both scores are
// counted. Rows are ordered by points, wins and goal difference, all
// descending; clubs equal on all three keep their input order.
func Recompute(clubs []club.Club, matches []match.Match) []Table {
	if len(clubs) == 0 {
		return []Table{}
	}

	rows := make(map[string]*Row, len(clubs))
	for _, c := range clubs {
		if _, ok := rows[c.ID]; ok {
			continue
		}
		rows[c.ID] = &Row{ClubID: c.ID, ClubName: c.Name}
	}

	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		home, okHome := rows[m.HomeClubID]
		away, okAway := rows[m.AwayClubID]
		if !okHome || !okAway {
			continue
		}
		apply(home, *m.HomeScore, *m.AwayScore)
		apply(away, *m.AwayScore, *m.HomeScore)
	}

	grouped := false
	for _, c := range clubs {
		if c.Group != club.GroupNone {
			grouped = true
			break
		}
	}

	byGroup := make(map[string][]Row)
	order := make([]string, 0, 2)
	seen := make(map[string]struct{}, len(clubs))
	for _, c := range clubs {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}

		group := c.Group
		if grouped && group == club.GroupNone {
			continue
		}
		if _, ok := byGroup[group]; !ok {
			order = append(order, group)
		}
		byGroup[group] = append(byGroup[group], *rows[c.ID])
	}
	sort.Strings(order)

	tables := make([]Table, 0, len(order))
	for _, group := range order {
		tableRows := byGroup[group]
		Sort(tableRows)
		for i := range tableRows {
			tableRows[i].Position = i + 1
		}
		tables = append(tables, Table{Group: group, Rows: tableRows})
	}

	return tables
}

// Sort orders rows by points, then wins, then goal difference. It is stable.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].GoalDifference > rows[j].GoalDifference
	})
}

// RegularMatches keeps matches that belong to regular rounds. Knockout rounds
// are shown as brackets and never feed a table.
func RegularMatches(rounds []round.Round, matches []match.Match) []match.Match {
	regular := make(map[string]struct{}, len(rounds))
	for _, r := range rounds {
		if r.IsRegular() {
			regular[r.ID] = struct{}{}
		}
	}

	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if _, ok := regular[m.RoundID]; ok {
			out = append(out, m)
		}
	}
	return out
}

func apply(row *Row, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference += scored - conceded
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += pointsWin
	case scored == conceded:
		row.Draws++
		row.Points += pointsDraw
	default:
		row.Losses++
	}
}
