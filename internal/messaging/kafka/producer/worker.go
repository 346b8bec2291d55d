package producer

import (
	"context"
	"time"

	"go-payroll/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultPollInterval = 3 * time.Second
)

// Relay memindahkan event outbox ke Kafka. Event yang gagal ditandai failed
// dan diambil lagi oleh ListPending setelah backoff.
type Relay struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, pollInterval time.Duration, logger *zap.Logger) *Relay {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{
		repo:         repo,
		writer:       writer,
		logger:       logger.Named("kafka.producer.relay"),
		pollInterval: pollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Run memproses outbox setiap pollInterval sampai ctx selesai.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			r.drain(ctx)
		}
	}
}

// drain mengulang batch selama batch terakhir penuh.
func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		res, err := r.relayBatch(ctx)
		if err != nil {
			r.logger.Error("list pending outbox failed", zap.Error(err))
			return
		}
		if res.fetched < r.batchSize {
			return
		}
	}
}

type batchResult struct {
	fetched int
	sent    int
	failed  int
}

func (r *Relay) relayBatch(ctx context.Context) (batchResult, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return batchResult{}, err
	}

	res := batchResult{fetched: len(events)}
	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			res.failed++
			log.Warn("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox failed", zap.Error(markErr))
			}
			continue
		}

		// pesan sudah terkirim; jika MarkSent gagal event akan dikirim ulang
		// dan consumer harus idempotent
		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		res.sent++
		log.Debug("outbox event sent")
	}

	if res.fetched > 0 {
		r.logger.Info("outbox batch relayed",
			zap.Int("fetched", res.fetched),
			zap.Int("sent", res.sent),
			zap.Int("failed", res.failed),
		)
	}
	return res, nil
}
