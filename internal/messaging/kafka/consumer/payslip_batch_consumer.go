package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PayslipGenerator menjalankan pembuatan payslip massal.
type PayslipGenerator interface {
	BulkGenerate(ctx context.Context, scope payslip.Scope, runID string) (payslip.GenerationResult, error)
	Generate(ctx context.Context, scope payslip.Scope, entryIDs []string) (payslip.GenerationResult, error)
}

func ConsumePayslipBatchRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip_batch")
	log.Info("payslip batch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip batch consumer stopped")
				return
			}
			log.Error("fetch payslip batch message failed", zap.Error(err))
			continue
		}

		handlePayslipBatch(ctx, reader, generator, log, msg)
	}
}

func handlePayslipBatch(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.PayslipBatchRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payslip batch event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	eventLog := log.With(
		zap.String("request_id", event.RequestID),
		zap.String("payroll_run_id", event.PayrollRunID),
		zap.String("company_id", event.CompanyID),
	)
	eventCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), eventLog)
	scope := payslip.Scope{CompanyID: event.CompanyID, ReadAny: true}

	var (
		result payslip.GenerationResult
		err    error
	)
	if len(event.EntryIDs) > 0 {
		result, err = generator.Generate(eventCtx, scope, event.EntryIDs)
	} else {
		result, err = generator.BulkGenerate(eventCtx, scope, event.PayrollRunID)
	}
	if err != nil {
		eventLog.Error("bulk generate payslip failed", zap.Error(err))
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		eventLog.Error("commit payslip batch message failed", zap.Error(err))
		return
	}

	eventLog.Info("payslip batch processed",
		zap.Int("generated_count", result.GeneratedCount),
		zap.Int("error_count", len(result.Errors)),
	)
}
