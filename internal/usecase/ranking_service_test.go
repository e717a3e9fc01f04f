package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/fantasyteam"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/league"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/money"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	"github.com/edsoncmach/cartola-paranaense/internal/infrastructure/repository/memory"
)

func newRankingFixture(t *testing.T) (*RankingService, *memory.LeagueRepository, *memory.RoundRepository) {
	t.Helper()
	ctx := context.Background()

	teams := memory.NewTeamRepository([]fantasyteam.Team{
		{ID: "team-1", UserID: "user-1", Name: "Furacão FC", Balance: money.MustParse("100.00")},
		{ID: "team-2", UserID: "user-2", Name: "Coxa FC", Balance: money.MustParse("100.00")},
		{ID: "team-3", UserID: "user-3", Name: "Tubarão FC", Balance: money.MustParse("100.00")},
	})
	rounds := memory.NewRoundRepository(memory.SeedRounds(fixtureNow))
	scores := memory.NewScoreRepository()
	leagues := memory.NewLeagueRepository()

	if err := scores.ReplaceTeamScores(ctx, memory.RoundIDFirst, []scoring.TeamScore{
		{TeamID: "team-1", RoundID: memory.RoundIDFirst, Points: scoring.FromWhole(38)},
		{TeamID: "team-2", RoundID: memory.RoundIDFirst, Points: scoring.FromWhole(38)},
		{TeamID: "team-3", RoundID: memory.RoundIDFirst, Points: scoring.FromWhole(12)},
	}); err != nil {
		t.Fatalf("seed team scores: %v", err)
	}

	if err := leagues.Create(ctx, league.League{ID: "league-1", Name: "Resenha", InviteCode: "PRN26", OwnerUserID: "user-1", CreatedAt: fixtureNow}); err != nil {
		t.Fatalf("seed league: %v", err)
	}
	for _, teamID := range []string{"team-1", "team-3"} {
		if err := leagues.AddMember(ctx, league.Membership{LeagueID: "league-1", TeamID: teamID, JoinedAt: fixtureNow.Add(time.Minute)}); err != nil {
			t.Fatalf("seed membership: %v", err)
		}
	}

	return NewRankingService(rounds, teams, scores, leagues), leagues, rounds
}

func TestRankingService_RoundOrdersByPointsThenName(t *testing.T) {
	service, _, _ := newRankingFixture(t)

	got, err := service.Round(context.Background(), memory.RoundIDFirst)
	if err != nil {
		t.Fatalf("round ranking: %v", err)
	}
	if got.Round.ID != memory.RoundIDFirst || len(got.Entries) != 3 {
		t.Fatalf("unexpected ranking: %+v", got)
	}

	wantOrder := []string{"team-2", "team-1", "team-3"}
	for i, want := range wantOrder {
		entry := got.Entries[i]
		if entry.TeamID != want || entry.Position != i+1 {
			t.Fatalf("entry %d = %s at position %d, want %s", i, entry.TeamID, entry.Position, want)
		}
	}
}

func TestRankingService_RoundDefaultsToEarliestWhenNoneFinished(t *testing.T) {
	service, _, _ := newRankingFixture(t)

	got, err := service.Round(context.Background(), "")
	if err != nil {
		t.Fatalf("default round ranking: %v", err)
	}
	if got.Round.ID != memory.RoundIDFirst {
		t.Fatalf("expected default round %s, got %s", memory.RoundIDFirst, got.Round.ID)
	}

	_, err = service.Round(context.Background(), "r99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown round, got %v", err)
	}
}

func TestRankingService_LeagueIncludesOnlyMembers(t *testing.T) {
	service, _, rounds := newRankingFixture(t)
	ctx := context.Background()

	got, err := service.League(ctx, "league-1", memory.RoundIDFirst)
	if err != nil {
		t.Fatalf("league ranking: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[0].TeamID != "team-1" || got.Entries[1].TeamID != "team-3" {
		t.Fatalf("unexpected league ranking: %+v", got.Entries)
	}

	// members without a score in the round still appear with zero points
	got, err = service.League(ctx, "league-1", memory.RoundIDSecond)
	if err != nil {
		t.Fatalf("league ranking for unscored round: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[0].Points != 0 || got.Entries[0].TeamName != "Furacão FC" {
		t.Fatalf("unexpected unscored ranking: %+v", got.Entries)
	}

	closer := memory.NewRoundCloser(memory.NewPlayerRepository(nil), memory.NewTeamRepository(nil), rounds)
	if err := closer.CloseRound(ctx, scoring.RoundClosure{RoundID: memory.RoundIDFirst}); err != nil {
		t.Fatalf("close round: %v", err)
	}
	got, err = service.League(ctx, "league-1", "")
	if err != nil || got.Round.ID != memory.RoundIDFirst {
		t.Fatalf("expected last finished round by default: round=%s err=%v", got.Round.ID, err)
	}

	_, err = service.League(ctx, "missing", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
