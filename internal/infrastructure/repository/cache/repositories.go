package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/edsoncmach/cartola-paranaense/internal/domain/club"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/match"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/player"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/round"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/scoring"
	basecache "github.com/edsoncmach/cartola-paranaense/internal/platform/cache"
)

const (
	clubPrefix   = "club:"
	playerPrefix = "player:"
	roundPrefix  = "round:"
	matchPrefix  = "match:"
)

type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, clubPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, clubPrefix+"id:"+clubID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, clubPrefix)
	return nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

// PlayerRepository caches catalog reads. Every write drops the whole player
// namespace so a repriced player is never served at its old price.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.loadList(ctx, playerPrefix+"list", func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx)
	})
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	return r.loadList(ctx, playerPrefix+"club:"+clubID, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByClub(ctx, clubID)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, playerPrefix+"id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayer{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayer)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	return r.loadList(ctx, playerPrefix+"ids:"+strings.Join(ids, ","), func(ctx context.Context) ([]player.Player, error) {
		return r.next.GetByIDs(ctx, playerIDs)
	})
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	if err := r.next.Update(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	if err := r.next.Delete(ctx, playerID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerPrefix)
	return nil
}

func (r *PlayerRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayer struct {
	value  player.Player
	exists bool
}

type RoundRepository struct {
	next  round.Repository
	cache *basecache.Store
}

func NewRoundRepository(next round.Repository, cache *basecache.Store) *RoundRepository {
	return &RoundRepository{next: next, cache: cache}
}

func (r *RoundRepository) List(ctx context.Context) ([]round.Round, error) {
	v, err := r.cache.GetOrLoad(ctx, roundPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]round.Round(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]round.Round)
	return append([]round.Round(nil), items...), nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID string) (round.Round, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, roundPrefix+"id:"+roundID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, roundID)
		if err != nil {
			return nil, err
		}
		return cachedRound{value: item, exists: exists}, nil
	})
	if err != nil {
		return round.Round{}, false, err
	}

	cached, _ := v.(cachedRound)
	return cached.value, cached.exists, nil
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, roundPrefix)
	return nil
}

func (r *RoundRepository) Update(ctx context.Context, item round.Round) error {
	if err := r.next.Update(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, roundPrefix)
	return nil
}

type cachedRound struct {
	value  round.Round
	exists bool
}

// RoundCloser drops the player and round namespaces after a close so new
// prices and the finished flag are served at once.
type RoundCloser struct {
	next  scoring.RoundCloser
	cache *basecache.Store
}

func NewRoundCloser(next scoring.RoundCloser, cache *basecache.Store) *RoundCloser {
	return &RoundCloser{next: next, cache: cache}
}

func (r *RoundCloser) CloseRound(ctx context.Context, closure scoring.RoundClosure) error {
	err := r.next.CloseRound(ctx, closure)
	// A commit that reported an error may still have landed.
	r.cache.DeletePrefix(ctx, playerPrefix)
	r.cache.DeletePrefix(ctx, roundPrefix)
	return err
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.loadList(ctx, matchPrefix+"list", func(ctx context.Context) ([]match.Match, error) {
		return r.next.List(ctx)
	})
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundID string) ([]match.Match, error) {
	return r.loadList(ctx, matchPrefix+"round:"+roundID, func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListByRound(ctx, roundID)
	})
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, matchPrefix+"id:"+matchID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatch{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatch)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	if err := r.next.Create(ctx, m); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, matchPrefix)
	return nil
}

func (r *MatchRepository) SetScore(ctx context.Context, matchID string, homeScore, awayScore int) error {
	if err := r.next.SetScore(ctx, matchID, homeScore, awayScore); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, matchPrefix)
	return nil
}

func (r *MatchRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]match.Match, error)) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

type cachedMatch struct {
	value  match.Match
	exists bool
}
