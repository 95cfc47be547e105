package snapshot

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-loadout/internal/redis"
)

const (
	snapshotKeyPrefix = "loadout:snapshot:"
	indexKey          = "loadout:snapshots"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis snapshot repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.client.Get(ctx, GetKey(input.CharacterID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
				WithMeta("character_id", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get snapshot for character %s", input.CharacterID)
	}

	var snap entities.Snapshot
	if err := json.Unmarshal(result, &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot for character %s", input.CharacterID)
	}

	return &GetOutput{Snapshot: &snap}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}
	id := input.Snapshot.CharacterID

	data, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot for character %s", id)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, GetKey(id), data, 0)
	pipe.SAdd(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot for character %s", id)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := GetKey(input.CharacterID)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check snapshot existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, indexKey, input.CharacterID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot for character %s", input.CharacterID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}
	sort.Strings(ids)

	return &ListOutput{CharacterIDs: ids}, nil
}

// GetKey returns the Redis key for a character's snapshot
// Exposed for testing purposes
func GetKey(characterID string) string {
	return snapshotKeyPrefix + characterID
}
