package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/metrics"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/worker"
)

// progressEvery controls how often the fan-out loop reports progress.
const progressEvery = 25

type BroadcastUseCase interface {
	// BroadcastMessage queues the message for every known user and returns
	// the recipient count immediately. Fan-out runs in the background and
	// stops early when ctx is canceled.
	BroadcastMessage(ctx context.Context, message string) (int, error)
}

type broadcastUC struct {
	users      repository.UserRepository
	bot        adapter.TelegramBotAdapter
	workerPool *worker.Pool
	log        *zerolog.Logger
}

func NewBroadcastUseCase(
	users repository.UserRepository,
	bot adapter.TelegramBotAdapter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) BroadcastUseCase {
	l := logger.With().Str("component", "BroadcastUC").Logger()
	return &broadcastUC{users: users, bot: bot, workerPool: pool, log: &l}
}

func (uc *broadcastUC) BroadcastMessage(ctx context.Context, message string) (int, error) {
	allUsers, err := uc.users.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to fetch users for broadcast")
		return 0, err
	}

	jobID := ulid.Make().String()
	jobLog := uc.log.With().Str("job_id", jobID).Logger()

	// Throttle to respect Telegram's API limits (approx. 30 messages/sec).
	throttle := time.NewTicker(time.Second / 25)

	var failed int64
	go func() {
		defer throttle.Stop()
		jobLog.Info().Int("user_count", len(allUsers)).Msg("starting broadcast job")

		for i, u := range allUsers {
			select {
			case <-ctx.Done():
				jobLog.Warn().Int("queued", i).Msg("broadcast canceled")
				return
			case <-throttle.C:
			}

			task := uc.createSendTask(&jobLog, u.TelegramID, message, &failed)
			if err := uc.workerPool.Submit(task); err != nil {
				atomic.AddInt64(&failed, 1)
				jobLog.Warn().Err(err).Int64("tg_id", u.TelegramID).Msg("failed to submit broadcast task")
			}
			if (i+1)%progressEvery == 0 {
				jobLog.Info().Int("queued", i+1).Int("total", len(allUsers)).Msg("broadcast progress")
			}
		}
		jobLog.Info().Int64("failed", atomic.LoadInt64(&failed)).Msg("broadcast job finished queuing all tasks")
	}()

	return len(allUsers), nil
}

// createSendTask builds a closure for the worker pool. Send failures
// (blocked bot, rate limit) are counted and skipped, never retried.
func (uc *broadcastUC) createSendTask(jobLog *zerolog.Logger, telegramID int64, message string, failed *int64) worker.Task {
	return func(ctx context.Context) error {
		err := uc.bot.SendMessage(ctx, telegramID, message)
		metrics.IncBroadcastSend(err == nil)
		if err != nil {
			atomic.AddInt64(failed, 1)
			jobLog.Warn().Err(err).Int64("tg_id", telegramID).Msg("failed to send broadcast message")
		}
		return nil // keep the pool from double-logging task errors
	}
}
