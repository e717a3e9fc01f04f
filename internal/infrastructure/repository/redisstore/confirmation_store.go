package redisstore

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/confirmation"
	"github.com/edsoncmach/cartola-paranaense/internal/platform/resilience"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "cartola:confirmation"
	expiryIndexKey   = "expiry"
)

var errAlreadyExpired = crerr.New("confirmation already expired")

// ConfirmationStore keeps pending confirmations as JSON values. The Redis TTL
// runs confirmation.Retention past the deadline so a late confirmation still
// finds its token and can be told it expired. A sorted set indexed by expiry
// lets the sweeper report and drop tokens that outlived their deadline.
type ConfirmationStore struct {
	rdb     redis.UniversalClient
	prefix  string
	breaker *resilience.Breaker
	now     func() time.Time
}

func NewConfirmationStore(rdb redis.UniversalClient, prefix string, breaker *resilience.Breaker) *ConfirmationStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if breaker == nil {
		breaker = resilience.NewBreaker(resilience.BreakerConfig{})
	}
	return &ConfirmationStore{
		rdb:     rdb,
		prefix:  prefix,
		breaker: breaker,
		now:     time.Now,
	}
}

func (s *ConfirmationStore) Save(ctx context.Context, item confirmation.Pending) error {
	ttl := item.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return crerr.Wrapf(errAlreadyExpired, "token %s", item.Token)
	}

	payload, err := sonic.Marshal(item)
	if err != nil {
		return crerr.Wrap(err, "marshal pending confirmation")
	}

	return s.breaker.Do(ctx, func(ctx context.Context) error {
		_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.tokenKey(item.Token), payload, ttl+confirmation.Retention)
			pipe.ZAdd(ctx, s.indexKey(), redis.Z{
				Score:  float64(item.ExpiresAt.UnixMilli()),
				Member: item.Token,
			})
			return nil
		})
		if err != nil {
			return crerr.Wrap(err, "save pending confirmation")
		}
		return nil
	})
}

func (s *ConfirmationStore) Get(ctx context.Context, token string) (confirmation.Pending, error) {
	var raw []byte
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		value, err := s.rdb.Get(ctx, s.tokenKey(token)).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return crerr.Wrap(err, "get pending confirmation")
		}
		raw = value
		return nil
	})
	if err != nil {
		return confirmation.Pending{}, err
	}
	return decodePending(raw)
}

// Take reads and deletes the token in one GETDEL so a token confirms once.
func (s *ConfirmationStore) Take(ctx context.Context, token string) (confirmation.Pending, error) {
	var raw []byte
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		value, err := s.rdb.GetDel(ctx, s.tokenKey(token)).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return crerr.Wrap(err, "take pending confirmation")
		}
		raw = value
		return s.rdb.ZRem(ctx, s.indexKey(), token).Err()
	})
	if err != nil {
		return confirmation.Pending{}, err
	}
	return decodePending(raw)
}

// DeleteExpired drops every indexed token whose expiry is at or before now.
func (s *ConfirmationStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		tokens, err := s.rdb.ZRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{
			Min: "-inf",
			Max: strconv.FormatInt(now.UnixMilli(), 10),
		}).Result()
		if err != nil {
			return crerr.Wrap(err, "list expired confirmations")
		}
		if len(tokens) == 0 {
			return nil
		}

		keys := make([]string, 0, len(tokens))
		members := make([]any, 0, len(tokens))
		for _, token := range tokens {
			keys = append(keys, s.tokenKey(token))
			members = append(members, token)
		}

		_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, keys...)
			pipe.ZRem(ctx, s.indexKey(), members...)
			return nil
		})
		if err != nil {
			return crerr.Wrap(err, "delete expired confirmations")
		}
		removed = len(tokens)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func decodePending(raw []byte) (confirmation.Pending, error) {
	if raw == nil {
		return confirmation.Pending{}, confirmation.ErrNotFound
	}

	var item confirmation.Pending
	if err := sonic.Unmarshal(raw, &item); err != nil {
		return confirmation.Pending{}, crerr.Wrap(err, "decode pending confirmation")
	}
	return item, nil
}

func (s *ConfirmationStore) tokenKey(token string) string {
	return s.prefix + ":token:" + token
}

func (s *ConfirmationStore) indexKey() string {
	return s.prefix + ":" + expiryIndexKey
}
