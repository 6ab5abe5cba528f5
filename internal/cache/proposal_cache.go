package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	dom "propboard/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "proposal:"
)

// ProposalCache caches per-user list, search and overdue results in Redis.
type ProposalCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewProposalCache returns a new ProposalCache.
func NewProposalCache(rdb *redis.Client, ttl time.Duration) *ProposalCache {
	return &ProposalCache{rdb: rdb, ttl: ttl}
}

func listKey(userID int64) string {
	return keyPrefix + "list:" + strconv.FormatInt(userID, 10)
}

func overdueKey(userID int64) string {
	return keyPrefix + "overdue:" + strconv.FormatInt(userID, 10)
}

func searchKey(userID int64, q string) string {
	return keyPrefix + "search:" + strconv.FormatInt(userID, 10) + ":" + normalizeQuery(q)
}

func searchPattern(userID int64) string {
	return keyPrefix + "search:" + strconv.FormatInt(userID, 10) + ":*"
}

// GetList returns the cached list or nil on miss.
func (c *ProposalCache) GetList(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	return c.getList(ctx, listKey(userID))
}

// SetList stores the list in cache.
func (c *ProposalCache) SetList(ctx context.Context, userID int64, list []dom.Proposal) error {
	return c.setList(ctx, listKey(userID), list)
}

// GetSearch returns the cached search result for query q, or nil on miss.
func (c *ProposalCache) GetSearch(ctx context.Context, userID int64, q string) ([]dom.Proposal, error) {
	return c.getList(ctx, searchKey(userID, q))
}

// SetSearch stores the search result in cache.
func (c *ProposalCache) SetSearch(ctx context.Context, userID int64, q string, list []dom.Proposal) error {
	return c.setList(ctx, searchKey(userID, q), list)
}

// GetOverdue returns the cached overdue list or nil on miss.
func (c *ProposalCache) GetOverdue(ctx context.Context, userID int64) ([]dom.Proposal, error) {
	return c.getList(ctx, overdueKey(userID))
}

// SetOverdue stores the overdue list in cache.
func (c *ProposalCache) SetOverdue(ctx context.Context, userID int64, list []dom.Proposal) error {
	return c.setList(ctx, overdueKey(userID), list)
}

// InvalidateAll removes the user's list, overdue and search keys
// (cache invalidation on every write).
func (c *ProposalCache) InvalidateAll(ctx context.Context, userID int64) error {
	if err := c.rdb.Del(ctx, listKey(userID), overdueKey(userID)).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, searchPattern(userID), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *ProposalCache) getList(ctx context.Context, key string) ([]dom.Proposal, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Proposal
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ProposalCache) setList(ctx context.Context, key string, list []dom.Proposal) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
