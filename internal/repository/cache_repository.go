package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetWorkspace(ctx context.Context, workspace *model.Workspace) error {
	data, err := json.Marshal(workspace)
	if err != nil {
		return util.LogError("ошибка сериализации workspace", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(workspace.ID.Hex()), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения workspace из Redis", err)
	}

	var workspace model.Workspace
	if err := json.Unmarshal([]byte(val), &workspace); err != nil {
		return nil, util.LogError("ошибка десериализации workspace из кэша", err)
	}
	return &workspace, nil
}

func (r *CacheRepository) DeleteWorkspace(ctx context.Context, id string) error {
	if err := r.client.Client.Del(ctx, r.key(id)).Err(); err != nil {
		return util.LogError("ошибка удаления workspace из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(id string) string {
	return fmt.Sprintf("workspace:%s", id)
}
