package rbac

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound indicates that the requested record does not exist.
var ErrNotFound = errors.New("rbac: not found")

// PermissionSource resolves the effective permission names of a user.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}

// Service resolves effective permissions from PostgreSQL with a short-lived
// Redis cache in front, so permission checks do not hit the database on
// every request.
type Service struct {
	pool     *pgxpool.Pool
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewService constructs a Service backed by the provided pool. The cache
// client may be nil, in which case every lookup goes to the database.
func NewService(pool *pgxpool.Pool, cache *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Service{pool: pool, cache: cache, cacheTTL: cacheTTL}
}

// EffectivePermissions returns deduplicated permission names for a user.
func (s *Service) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	if names, ok := s.cached(ctx, userID); ok {
		return names, nil
	}

	const query = `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
		ORDER BY p.name`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.store(ctx, userID, names)
	return names, nil
}

// InvalidateUser drops the cached permissions of a user after a role change.
func (s *Service) InvalidateUser(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, s.cacheKey(userID)).Err()
}

func (s *Service) cached(ctx context.Context, userID int64) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false
	}
	return names, true
}

func (s *Service) store(ctx context.Context, userID int64, names []string) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(names)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, s.cacheKey(userID), data, s.cacheTTL).Err()
}

func (s *Service) cacheKey(userID int64) string {
	return "rbac:perms:" + strconv.FormatInt(userID, 10)
}
