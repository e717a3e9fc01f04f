package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
)

type ScoreRepository struct {
	mu           sync.RWMutex
	playerScores map[string][]scoring.PlayerScore
	teamScores   map[string][]scoring.TeamScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{
		playerScores: make(map[string][]scoring.PlayerScore),
		teamScores:   make(map[string][]scoring.TeamScore),
	}
}

// ReplaceMatchScores drops the earlier scores of the match before storing the new ones.
func (r *ScoreRepository) ReplaceMatchScores(_ context.Context, roundID, matchID string, scores []scoring.PlayerScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]scoring.PlayerScore, 0, len(r.playerScores[roundID])+len(scores))
	for _, sc := range r.playerScores[roundID] {
		if sc.MatchID != matchID {
			kept = append(kept, sc)
		}
	}
	kept = append(kept, scores...)
	r.playerScores[roundID] = kept
	return nil
}

func (r *ScoreRepository) ListPlayerScoresByRound(_ context.Context, roundID string) ([]scoring.PlayerScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]scoring.PlayerScore(nil), r.playerScores[roundID]...), nil
}

func (r *ScoreRepository) ReplaceTeamScores(_ context.Context, roundID string, scores []scoring.TeamScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teamScores[roundID] = append([]scoring.TeamScore(nil), scores...)
	return nil
}

func (r *ScoreRepository) ListTeamScoresByRound(_ context.Context, roundID string) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]scoring.TeamScore(nil), r.teamScores[roundID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out, nil
}

func (r *ScoreRepository) referencesPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, scores := range r.playerScores {
		for _, sc := range scores {
			if sc.PlayerID == playerID {
				return true
			}
		}
	}
	return false
}
