package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"aussiemate/config"
	"aussiemate/services/cleaner"
	"aussiemate/services/job"
	"aussiemate/upstream"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSnapshotRefresh = "snapshot:refresh"

// SnapshotRefreshPayload carries the requesting admin's upstream token; the
// worker has no credentials of its own.
type SnapshotRefreshPayload struct {
	Token string `json:"token"`
	Scope string `json:"scope"` // "cleaners", "jobs" or "all"
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// NewTaskClient returns an asynq client for enqueuing snapshot refreshes.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// EnqueueSnapshotRefresh schedules a background roster walk.
func EnqueueSnapshotRefresh(client *asynq.Client, token, scope string) error {
	payload, err := json.Marshal(SnapshotRefreshPayload{Token: token, Scope: scope})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSnapshotRefresh, payload)
	_, err = client.Enqueue(task, asynq.MaxRetry(2), asynq.Timeout(5*time.Minute))
	return err
}

// InitSnapshotWorker runs the async worker in background.
func InitSnapshotWorker(cleanerSvc cleaner.Service, jobSvc job.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSnapshotRefresh, handleSnapshotRefresh(cleanerSvc, jobSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[SnapshotWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SnapshotWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SnapshotWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSnapshotRefresh(cleanerSvc cleaner.Service, jobSvc job.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p SnapshotRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			zap.L().Error("snapshot task carried an invalid payload", zap.Error(err))
			return err
		}
		if p.Token == "" {
			zap.L().Warn("snapshot task carried no upstream token, skipping")
			return nil
		}

		ctx = upstream.WithToken(ctx, p.Token)

		if p.Scope == "cleaners" || p.Scope == "all" || p.Scope == "" {
			n, err := cleanerSvc.RefreshSnapshot(ctx)
			if err != nil {
				zap.L().Error("cleaner snapshot refresh failed", zap.Error(err))
				return err
			}
			zap.L().Info("cleaner snapshot refreshed", zap.Int("count", n))
		}
		if p.Scope == "jobs" || p.Scope == "all" || p.Scope == "" {
			n, err := jobSvc.RefreshSnapshot(ctx)
			if err != nil {
				zap.L().Error("job snapshot refresh failed", zap.Error(err))
				return err
			}
			zap.L().Info("job snapshot refreshed", zap.Int("count", n))
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SnapshotWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
