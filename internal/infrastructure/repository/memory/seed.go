package memory

import (
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
)

const (
	ClubIDAthletico = "cap"
	ClubIDCoritiba  = "cfc"
	ClubIDLondrina  = "lec"
	ClubIDOperario  = "ofec"

	RoundIDFirst  = "r1"
	RoundIDSecond = "r2"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDAthletico, Name: "Athletico Paranaense", Slug: "athletico-paranaense", Group: club.GroupA},
		{ID: ClubIDCoritiba, Name: "Coritiba", Slug: "coritiba", Group: club.GroupA},
		{ID: ClubIDLondrina, Name: "Londrina", Slug: "londrina", Group: club.GroupB},
		{ID: ClubIDOperario, Name: "Operário Ferroviário", Slug: "operario-ferroviario", Group: club.GroupB},
	}
}

// SeedPlayers covers every slot of a 4-3-3 at 5.00 each, plus a pricier
// second goalkeeper and a spare forward.
func SeedPlayers() []player.Player {
	five := money.MustParse("5.00")
	return []player.Player{
		{ID: "cap-gol-1", ClubID: ClubIDAthletico, Name: "Mycael", Position: player.PositionGoalkeeper, Price: five, Status: player.StatusLikely},
		{ID: "cap-zag-1", ClubID: ClubIDAthletico, Name: "Thiago Heleno", Position: player.PositionCenterBack, Price: five, Status: player.StatusLikely},
		{ID: "cfc-zag-1", ClubID: ClubIDCoritiba, Name: "Maurício Antônio", Position: player.PositionCenterBack, Price: five, Status: player.StatusLikely},
		{ID: "cap-lat-1", ClubID: ClubIDAthletico, Name: "Esquivel", Position: player.PositionFullback, Price: five, Status: player.StatusDoubt},
		{ID: "cfc-lat-1", ClubID: ClubIDCoritiba, Name: "Natanael", Position: player.PositionFullback, Price: five, Status: player.StatusLikely},
		{ID: "cap-mei-1", ClubID: ClubIDAthletico, Name: "Fernandinho", Position: player.PositionMidfielder, Price: five, Status: player.StatusLikely},
		{ID: "cfc-mei-1", ClubID: ClubIDCoritiba, Name: "Sebastián Gómez", Position: player.PositionMidfielder, Price: five, Status: player.StatusLikely},
		{ID: "lec-mei-1", ClubID: ClubIDLondrina, Name: "Celsinho", Position: player.PositionMidfielder, Price: five, Status: player.StatusLikely},
		{ID: "cap-ata-1", ClubID: ClubIDAthletico, Name: "Canobbio", Position: player.PositionForward, Price: five, Status: player.StatusLikely},
		{ID: "cfc-ata-1", ClubID: ClubIDCoritiba, Name: "Lucas Ronier", Position: player.PositionForward, Price: five, Status: player.StatusLikely},
		{ID: "ofec-ata-1", ClubID: ClubIDOperario, Name: "Vinícius Mingotti", Position: player.PositionForward, Price: five, Status: player.StatusLikely},
		{ID: "cap-tec-1", ClubID: ClubIDAthletico, Name: "Odair Hellmann", Position: player.PositionCoach, Price: five, Status: player.StatusLikely},
		{ID: "cfc-gol-1", ClubID: ClubIDCoritiba, Name: "Pedro Morisco", Position: player.PositionGoalkeeper, Price: money.MustParse("8.50"), Status: player.StatusLikely},
		{ID: "lec-ata-1", ClubID: ClubIDLondrina, Name: "Iago Teles", Position: player.PositionForward, Price: money.MustParse("3.20"), Status: player.StatusInjured},
	}
}

// SeedSquad433 lists the twelve 5.00 players of SeedPlayers that fill a 4-3-3.
func SeedSquad433() []string {
	return []string{
		"cap-gol-1",
		"cap-zag-1", "cfc-zag-1",
		"cap-lat-1", "cfc-lat-1",
		"cap-mei-1", "cfc-mei-1", "lec-mei-1",
		"cap-ata-1", "cfc-ata-1", "ofec-ata-1",
		"cap-tec-1",
	}
}

// SeedRounds returns an open first round and a later second round relative to now.
func SeedRounds(now time.Time) []round.Round {
	return []round.Round{
		{
			ID:            RoundIDFirst,
			Name:          "Rodada 1",
			Type:          round.TypeRegular,
			Leg:           round.LegSingle,
			MarketCloseAt: now.Add(48 * time.Hour).UTC(),
			EndsAt:        now.Add(96 * time.Hour).UTC(),
		},
		{
			ID:            RoundIDSecond,
			Name:          "Rodada 2",
			Type:          round.TypeRegular,
			Leg:           round.LegSingle,
			MarketCloseAt: now.Add(7 * 24 * time.Hour).UTC(),
			EndsAt:        now.Add(9 * 24 * time.Hour).UTC(),
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{ID: "r1-cap-cfc", RoundID: RoundIDFirst, HomeClubID: ClubIDAthletico, AwayClubID: ClubIDCoritiba},
		{ID: "r1-lec-ofec", RoundID: RoundIDFirst, HomeClubID: ClubIDLondrina, AwayClubID: ClubIDOperario},
		{ID: "r2-cfc-cap", RoundID: RoundIDSecond, HomeClubID: ClubIDCoritiba, AwayClubID: ClubIDAthletico},
		{ID: "r2-ofec-lec", RoundID: RoundIDSecond, HomeClubID: ClubIDOperario, AwayClubID: ClubIDLondrina},
	}
}
