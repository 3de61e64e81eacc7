package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobee/jobee-api/internal/job/domain"
)

const jobCacheTTL = time.Hour

// JobCache keeps recently read jobs in Redis to take pressure off the
// single-job read path.
type JobCache struct {
	client *redis.Client
}

func NewJobCache(client *redis.Client) *JobCache {
	return &JobCache{client: client}
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *JobCache) Get(ctx context.Context, id string) (*domain.Job, error) {
	data, err := c.client.Get(ctx, "job:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *JobCache) Set(ctx context.Context, job *domain.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "job:"+job.ID, data, jobCacheTTL).Err()
}

func (c *JobCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "job:"+id).Err()
}
