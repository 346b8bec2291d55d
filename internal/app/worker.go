package app

import (
	"context"

	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/messaging/kafka/producer"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker memindahkan event outbox ke Kafka sampai ctx selesai.
func RunWorker(ctx context.Context, in *Infra) error {
	logger := in.Logger.Named("app.worker")

	writer, err := connection.NewKafkaWriter(in.Config.Kafka)
	if err != nil {
		return err
	}
	defer writer.Close()

	producer.NewRelay(
		kafka.NewOutboxRepository(in.DB),
		writer,
		in.Config.Kafka.OutboxPollInterval,
		logger,
	).Run(ctx)

	logger.Info("worker stopped", zap.String("reason", context.Cause(ctx).Error()))
	return nil
}
