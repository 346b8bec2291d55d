package app

import (
	"context"
	"sync"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RunConsumer menjalankan consumer employee.created dan payslip.batch.requested
// sampai ctx selesai.
func RunConsumer(ctx context.Context, in *Infra, audit bootstrap.AuditLogger) error {
	logger := in.Logger.Named("app.consumer")
	kcfg := in.Config.Kafka

	svc, err := newServices(in, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	employeeReader, err := connection.NewKafkaReader(kcfg, events.EmployeeLifecycleTopic, kcfg.EmployeeSalaryGroup)
	if err != nil {
		return err
	}
	defer employeeReader.Close()

	payslipReader, err := connection.NewKafkaReader(kcfg, events.PayslipBatchRequestedTopic, kcfg.PayslipGroup)
	if err != nil {
		return err
	}
	defer payslipReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, svc.employeeSalary, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumePayslipBatchRequested(ctx, payslipReader, &auditedGenerator{next: svc.payslip, audit: audit}, logger)
	}()

	wg.Wait()
	logger.Info("consumer stopped", zap.String("reason", context.Cause(ctx).Error()))

	return nil
}

// auditedGenerator mencatat hasil setiap batch payslip ke audit log.
type auditedGenerator struct {
	next  consumer.PayslipGenerator
	audit bootstrap.AuditLogger
}

func (g *auditedGenerator) BulkGenerate(ctx context.Context, scope payslip.Scope, runID string) (payslip.GenerationResult, error) {
	res, err := g.next.BulkGenerate(ctx, scope, runID)
	g.record(ctx, scope, map[string]any{"payroll_run_id": runID}, res, err)
	return res, err
}

func (g *auditedGenerator) Generate(ctx context.Context, scope payslip.Scope, entryIDs []string) (payslip.GenerationResult, error) {
	res, err := g.next.Generate(ctx, scope, entryIDs)
	g.record(ctx, scope, map[string]any{"entry_count": len(entryIDs)}, res, err)
	return res, err
}

func (g *auditedGenerator) record(ctx context.Context, scope payslip.Scope, meta map[string]any, res payslip.GenerationResult, err error) {
	meta["company_id"] = scope.CompanyID
	meta["generated_count"] = res.GeneratedCount
	meta["error_count"] = len(res.Errors)

	entry := bootstrap.AuditLog{
		Action:  "PAYSLIP_BATCH_GENERATED",
		Message: "Payslip batch processed",
		Meta:    meta,
	}
	if err != nil {
		entry.Action = "PAYSLIP_BATCH_FAILED"
		entry.Message = err.Error()
	}
	g.audit.Log(ctx, entry)
}
