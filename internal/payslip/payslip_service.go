package payslip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	defaultPerPage = 10
	maxPerPage     = 100

	// PayslipCounterType adalah tipe counter company untuk nomor urut payslip.
	PayslipCounterType = "payslip"
)

type Service interface {
	List(ctx context.Context, scope Scope, filter ListPayslipsFilter) (PayslipPage, error)
	GetByID(ctx context.Context, scope Scope, id string) (PayslipResponse, error)
	Generate(ctx context.Context, scope Scope, entryIDs []string) (GenerationResult, error)
	BulkGenerate(ctx context.Context, scope Scope, runID string) (GenerationResult, error)
	RequestBulkGenerate(ctx context.Context, scope Scope, runID string) (BulkGenerateAccepted, error)
	Download(ctx context.Context, scope Scope, id string) (ExportFile, error)
	ExportExcel(ctx context.Context, scope Scope, filter ListPayslipsFilter) (ExportFile, error)
	ExportPDF(ctx context.Context, scope Scope, filter ListPayslipsFilter) (ExportFile, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	counter     counter.Repository
	renderer    Renderer
	storage     Storage
	outbox      kafka.OutboxRepository
	metrics     *Metrics
	companyName string
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	renderer Renderer,
	storage Storage,
	metrics *Metrics,
	companyName string,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, renderer, storage, metrics, companyName, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	renderer Renderer,
	storage Storage,
	metrics *Metrics,
	companyName string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		renderer:    renderer,
		storage:     storage,
		outbox:      outboxRepo,
		metrics:     metrics,
		companyName: companyName,
		now:         func() time.Time { return time.Now() },
		logger:      l,
	}
}

func (s *service) List(ctx context.Context, scope Scope, filter ListPayslipsFilter) (PayslipPage, error) {
	q, err := buildListQuery(filter, true)
	if err != nil {
		return PayslipPage{}, err
	}

	page := PayslipPage{Items: []PayslipResponse{}, Page: q.Offset/q.Limit + 1, PerPage: q.Limit}
	if !scope.visible() {
		return page, nil
	}

	rows, total, err := s.repo.FindPage(ctx, scope, q)
	if err != nil {
		return PayslipPage{}, mapRepositoryError(err)
	}

	page.Total = total
	page.Items = make([]PayslipResponse, len(rows))
	for i, row := range rows {
		page.Items[i] = mapDetailToResponse(row)
	}
	return page, nil
}

func (s *service) GetByID(ctx context.Context, scope Scope, id string) (PayslipResponse, error) {
	if !scope.visible() {
		return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
	}

	detail, err := s.repo.FindDetailByID(ctx, scope, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapDetailToResponse(*detail), nil
}

// Generate membuat payslip untuk entry yang dipilih. Entry yang tidak ada
// atau sudah punya payslip dilewati; kegagalan per entry dicatat di Errors.
func (s *service) Generate(ctx context.Context, scope Scope, entryIDs []string) (GenerationResult, error) {
	return s.generateAll(ctx, scope, entryIDs), nil
}

func (s *service) BulkGenerate(ctx context.Context, scope Scope, runID string) (GenerationResult, error) {
	exists, err := s.repo.RunExists(ctx, scope.CompanyID, runID)
	if err != nil {
		return GenerationResult{}, err
	}
	if !exists {
		return GenerationResult{}, paysliperrors.ErrPayrollRunNotFound
	}

	entryIDs, err := s.repo.FindEntryIDsByRun(ctx, scope.CompanyID, runID)
	if err != nil {
		return GenerationResult{}, err
	}
	return s.generateAll(ctx, scope, entryIDs), nil
}

// RequestBulkGenerate mencatat event di outbox; consumer yang menjalankan BulkGenerate.
func (s *service) RequestBulkGenerate(ctx context.Context, scope Scope, runID string) (BulkGenerateAccepted, error) {
	if s.outbox == nil {
		return BulkGenerateAccepted{}, paysliperrors.ErrAsyncUnavailable
	}

	log := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	exists, err := s.repo.RunExists(ctx, scope.CompanyID, runID)
	if err != nil {
		return BulkGenerateAccepted{}, err
	}
	if !exists {
		return BulkGenerateAccepted{}, paysliperrors.ErrPayrollRunNotFound
	}

	event, err := kafka.NewOutboxEvent(
		events.PayslipBatchRequestedTopic,
		events.PayslipBatchRequestedEventType,
		events.AggregatePayrollRun,
		runID,
		rid,
		events.PayslipBatchRequestedEvent{
			EventType:    events.PayslipBatchRequestedEventType,
			RequestID:    rid,
			PayrollRunID: runID,
			CompanyID:    scope.CompanyID,
			RequestedBy:  contextutil.GetUserID(ctx),
			OccurredAt:   s.now().UTC(),
		},
	)
	if err != nil {
		return BulkGenerateAccepted{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkGenerateAccepted{}, err
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("queue payslip batch failed",
			zap.String("request_id", rid),
			zap.String("payroll_run_id", runID),
			zap.Error(err),
		)
		return BulkGenerateAccepted{}, err
	}

	if err := tx.Commit(); err != nil {
		return BulkGenerateAccepted{}, err
	}

	log.Info("payslip batch queued",
		zap.String("request_id", rid),
		zap.String("payroll_run_id", runID),
		zap.String("outbox_event_id", event.ID),
	)

	return BulkGenerateAccepted{PayrollRunID: runID, RequestID: rid, Status: "queued"}, nil
}

func (s *service) generateAll(ctx context.Context, scope Scope, entryIDs []string) GenerationResult {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("company_id", scope.CompanyID),
	)

	result := GenerationResult{Errors: []string{}}
	for _, entryID := range entryIDs {
		reason, err := s.generateOne(ctx, scope, entryID)
		switch {
		case err != nil:
			s.metrics.errors.Inc()
			log.Warn("generate payslip failed", zap.String("payroll_entry_id", entryID), zap.Error(err))
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to generate payslip for entry ID %s: %s", entryID, err.Error()))
		case reason != "":
			s.metrics.skipped.WithLabelValues(reason).Inc()
			result.SkippedCount++
		default:
			s.metrics.generated.Inc()
			result.GeneratedCount++
		}
	}

	log.Info("payslip generation finished",
		zap.Int("requested", len(entryIDs)),
		zap.Int("generated_count", result.GeneratedCount),
		zap.Int("skipped_count", result.SkippedCount),
		zap.Int("error_count", len(result.Errors)),
	)
	return result
}

// generateOne mengembalikan alasan skip (kosong bila payslip dibuat).
// Record, render dan penyimpanan file berjalan dalam satu transaksi.
func (s *service) generateOne(ctx context.Context, scope Scope, entryID string) (string, error) {
	src, err := s.repo.FindEntrySource(ctx, scope.CompanyID, entryID)
	if err != nil {
		if errors.Is(mapRepositoryError(err), paysliperrors.ErrPayslipNotFound) {
			return skipReasonEntryMissing, nil
		}
		return "", err
	}

	exists, err := s.repo.ExistsForEntry(ctx, scope.CompanyID, entryID)
	if err != nil {
		return "", err
	}
	if exists {
		return skipReasonAlreadyExists, nil
	}

	seq, err := s.counter.GetNextValue(ctx, scope.CompanyID, PayslipCounterType)
	if err != nil {
		return "", err
	}

	number := payslipNumber(*src, seq)
	p := &Payslip{
		ID:             uuid.New(),
		CompanyID:      src.CompanyID,
		PayrollEntryID: src.EntryID,
		PayrollRunID:   src.PayrollRunID,
		EmployeeID:     src.EmployeeID,
		PayslipNumber:  number,
		PayPeriodStart: src.PayPeriodStart,
		PayPeriodEnd:   src.PayPeriodEnd,
		PayDate:        src.PayDate,
		Status:         StatusGenerated,
		FilePath:       StoragePath(scope.CompanyID, number),
	}
	if actor, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
		p.CreatedBy = &actor
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, paysliperrors.ErrPayslipAlreadyExists) {
			return skipReasonAlreadyExists, nil
		}
		return "", mapped
	}

	detail, err := qtx.FindDetailByEntry(ctx, scope.CompanyID, entryID)
	if err != nil {
		return "", err
	}
	content, err := s.renderer.RenderPayslip(*detail, s.companyName)
	if err != nil {
		return "", fmt.Errorf("render payslip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	// file ditulis setelah commit; bila gagal, Download merender ulang
	if err := s.storage.Save(ctx, p.FilePath, content); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("payslip stored without pdf",
			zap.String("payslip_id", p.ID.String()),
			zap.String("file_path", p.FilePath),
			zap.Error(err),
		)
	}
	return "", nil
}

func (s *service) renderAndStore(ctx context.Context, d PayslipDetail, path string) error {
	content, err := s.renderer.RenderPayslip(d, s.companyName)
	if err != nil {
		return fmt.Errorf("render payslip: %w", err)
	}
	return s.storage.Save(ctx, path, content)
}

// Download merender ulang PDF bila file belum ada di storage, lalu menandai
// payslip sebagai downloaded.
func (s *service) Download(ctx context.Context, scope Scope, id string) (ExportFile, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payslip_id", id),
	)

	if !scope.visible() {
		return ExportFile{}, paysliperrors.ErrPayslipNotFound
	}

	detail, err := s.repo.FindDetailByID(ctx, scope, id)
	if err != nil {
		return ExportFile{}, mapRepositoryError(err)
	}

	content, err := s.loadOrRender(ctx, log, scope.CompanyID, detail)
	if err != nil {
		return ExportFile{}, err
	}

	if err := s.repo.MarkDownloaded(ctx, scope.CompanyID, id, s.now().UTC()); err != nil {
		return ExportFile{}, mapRepositoryError(err)
	}

	return ExportFile{
		FileName:    "payslip-" + detail.PayslipNumber + ".pdf",
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

func (s *service) loadOrRender(ctx context.Context, log *zap.Logger, companyID string, d *PayslipDetail) ([]byte, error) {
	if d.FilePath != "" {
		ok, err := s.storage.Exists(ctx, d.FilePath)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.storage.Read(ctx, d.FilePath)
		}
	}

	log.Info("payslip file missing, regenerating", zap.String("file_path", d.FilePath))

	content, err := s.renderer.RenderPayslip(*d, s.companyName)
	if err != nil {
		log.Error("render payslip failed", zap.Error(err))
		return nil, paysliperrors.ErrRenderFailed
	}

	path := StoragePath(companyID, d.PayslipNumber)
	if err := s.storage.Save(ctx, path, content); err != nil {
		return nil, err
	}
	if path != d.FilePath {
		if err := s.repo.UpdateFilePath(ctx, companyID, d.ID.String(), path); err != nil {
			return nil, mapRepositoryError(err)
		}
	}
	return content, nil
}

func (s *service) exportRows(ctx context.Context, scope Scope, filter ListPayslipsFilter) ([]PayslipDetail, error) {
	q, err := buildListQuery(filter, false)
	if err != nil {
		return nil, err
	}
	if !scope.visible() {
		return []PayslipDetail{}, nil
	}

	rows, _, err := s.repo.FindPage(ctx, scope, q)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rows, nil
}

func (s *service) ExportExcel(ctx context.Context, scope Scope, filter ListPayslipsFilter) (ExportFile, error) {
	rows, err := s.exportRows(ctx, scope, filter)
	if err != nil {
		return ExportFile{}, err
	}

	content, err := RenderExcel(rows)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render payslip excel failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return ExportFile{}, paysliperrors.ErrRenderFailed
	}

	return ExportFile{
		FileName:    exportFileName(s.now(), "xlsx"),
		ContentType: excelContentType,
		Content:     content,
	}, nil
}

func (s *service) ExportPDF(ctx context.Context, scope Scope, filter ListPayslipsFilter) (ExportFile, error) {
	rows, err := s.exportRows(ctx, scope, filter)
	if err != nil {
		return ExportFile{}, err
	}

	now := s.now()
	content, err := s.renderer.RenderReport(rows, s.companyName, now)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render payslip report failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return ExportFile{}, paysliperrors.ErrRenderFailed
	}

	return ExportFile{
		FileName:    exportFileName(now, "pdf"),
		ContentType: pdfContentType,
		Content:     content,
	}, nil
}

// buildListQuery memvalidasi filter. paginate false dipakai export (semua baris).
func buildListQuery(filter ListPayslipsFilter, paginate bool) (ListQuery, error) {
	q := ListQuery{ListPayslipsFilter: filter}

	if v := strings.TrimSpace(filter.DateFrom); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return ListQuery{}, paysliperrors.ErrInvalidDateFilter
		}
		q.From = &t
	}
	if v := strings.TrimSpace(filter.DateTo); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return ListQuery{}, paysliperrors.ErrInvalidDateFilter
		}
		q.To = &t
	}

	if field := strings.TrimSpace(filter.SortField); field != "" {
		column, ok := sortColumns[field]
		if !ok {
			return ListQuery{}, paysliperrors.ErrInvalidSortField
		}
		direction := "DESC"
		if strings.EqualFold(filter.SortDirection, "asc") {
			direction = "ASC"
		}
		q.OrderBy = column + " " + direction
	}

	if paginate {
		perPage := filter.PerPage
		if perPage <= 0 {
			perPage = defaultPerPage
		}
		if perPage > maxPerPage {
			perPage = maxPerPage
		}
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		q.Limit = perPage
		q.Offset = (page - 1) * perPage
	}
	return q, nil
}

// payslipNumber: PS-<yyyymmdd>-<nomor karyawan atau 8 char id>-<seq>.
func payslipNumber(src EntrySource, seq int64) string {
	ref := strings.TrimSpace(src.EmployeeNumber)
	if ref == "" {
		ref = strings.ToUpper(strings.ReplaceAll(src.EmployeeID.String(), "-", "")[:8])
	}
	return fmt.Sprintf("PS-%s-%s-%04d", src.PayDate.Format("20060102"), ref, seq)
}

func mapDetailToResponse(d PayslipDetail) PayslipResponse {
	resp := PayslipResponse{
		ID:             d.ID.String(),
		PayslipNumber:  d.PayslipNumber,
		PayrollEntryID: d.PayrollEntryID.String(),
		PayrollRunID:   d.PayrollRunID.String(),
		EmployeeID:     d.EmployeeID.String(),
		EmployeeName:   d.EmployeeName,
		Branch:         d.BranchName,
		Department:     d.DepartmentName,
		Position:       d.PositionName,
		PayPeriodStart: d.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:   d.PayPeriodEnd.Format(dateLayout),
		PayDate:        d.PayDate.Format(dateLayout),
		Status:         d.Status,
		BasicSalary:    d.BasicSalary,
		NetPay:         d.NetPay,
		HasFile:        d.FilePath != "",
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
	}
	if d.DownloadedAt != nil {
		v := d.DownloadedAt.Format(time.RFC3339)
		resp.DownloadedAt = &v
	}
	return resp
}
