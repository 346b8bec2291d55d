package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader adalah bagian dari *kafkago.Reader yang dipakai consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DefaultSalaryCreator membuat record gaji awal untuk karyawan baru.
type DefaultSalaryCreator interface {
	CreateDefault(ctx context.Context, companyID, employeeID string) (bool, error)
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	salaries DefaultSalaryCreator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		handleEmployeeCreated(ctx, reader, salaries, log, msg)
	}
}

func handleEmployeeCreated(
	ctx context.Context,
	reader MessageReader,
	salaries DefaultSalaryCreator,
	log *zap.Logger,
	msg kafkago.Message,
) {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee_created event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if event.EventType != "" && event.EventType != events.EmployeeCreatedEventType {
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	eventLog := log.With(
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("company_id", event.CompanyID),
	)
	eventCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, event.RequestID), eventLog)

	created, err := salaries.CreateDefault(eventCtx, event.CompanyID, event.EmployeeID)
	if err != nil {
		// tidak di-commit supaya dicoba lagi
		eventLog.Error("create default employee salary failed", zap.Error(err))
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		eventLog.Error("commit employee lifecycle message failed", zap.Error(err))
		return
	}

	if !created {
		eventLog.Warn("employee salary already exists for event, skipping")
		return
	}
	eventLog.Info("employee salary created from employee_created event")
}
