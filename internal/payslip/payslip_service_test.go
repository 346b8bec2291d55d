package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn            func(ctx context.Context, p *Payslip) error
	updateFilePathFn    func(ctx context.Context, companyID, id, path string) error
	markDownloadedFn    func(ctx context.Context, companyID, id string, at time.Time) error
	existsForEntryFn    func(ctx context.Context, companyID, entryID string) (bool, error)
	findPageFn          func(ctx context.Context, scope Scope, q ListQuery) ([]PayslipDetail, int64, error)
	findDetailByIDFn    func(ctx context.Context, scope Scope, id string) (*PayslipDetail, error)
	findDetailByEntryFn func(ctx context.Context, companyID, entryID string) (*PayslipDetail, error)
	findEntrySourceFn   func(ctx context.Context, companyID, entryID string) (*EntrySource, error)
	findEntryIDsByRunFn func(ctx context.Context, companyID, runID string) ([]string, error)
	runExistsFn         func(ctx context.Context, companyID, runID string) (bool, error)
}

func (f *fakeRepository) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, p *Payslip) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakeRepository) UpdateFilePath(ctx context.Context, companyID, id, path string) error {
	if f.updateFilePathFn != nil {
		return f.updateFilePathFn(ctx, companyID, id, path)
	}
	return nil
}

func (f *fakeRepository) MarkDownloaded(ctx context.Context, companyID, id string, at time.Time) error {
	if f.markDownloadedFn != nil {
		return f.markDownloadedFn(ctx, companyID, id, at)
	}
	return nil
}

func (f *fakeRepository) ExistsForEntry(ctx context.Context, companyID, entryID string) (bool, error) {
	if f.existsForEntryFn != nil {
		return f.existsForEntryFn(ctx, companyID, entryID)
	}
	return false, nil
}

func (f *fakeRepository) FindPage(ctx context.Context, scope Scope, q ListQuery) ([]PayslipDetail, int64, error) {
	if f.findPageFn != nil {
		return f.findPageFn(ctx, scope, q)
	}
	return nil, 0, nil
}

func (f *fakeRepository) FindDetailByID(ctx context.Context, scope Scope, id string) (*PayslipDetail, error) {
	if f.findDetailByIDFn != nil {
		return f.findDetailByIDFn(ctx, scope, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindDetailByEntry(ctx context.Context, companyID, entryID string) (*PayslipDetail, error) {
	if f.findDetailByEntryFn != nil {
		return f.findDetailByEntryFn(ctx, companyID, entryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindEntrySource(ctx context.Context, companyID, entryID string) (*EntrySource, error) {
	if f.findEntrySourceFn != nil {
		return f.findEntrySourceFn(ctx, companyID, entryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindEntryIDsByRun(ctx context.Context, companyID, runID string) ([]string, error) {
	if f.findEntryIDsByRunFn != nil {
		return f.findEntryIDsByRunFn(ctx, companyID, runID)
	}
	return nil, nil
}

func (f *fakeRepository) RunExists(ctx context.Context, companyID, runID string) (bool, error) {
	if f.runExistsFn != nil {
		return f.runExistsFn(ctx, companyID, runID)
	}
	return false, nil
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next++
	return f.next, nil
}

type fakeRenderer struct {
	payslipFn func(d PayslipDetail, companyName string) ([]byte, error)
	reportFn  func(details []PayslipDetail, companyName string, exportedAt time.Time) ([]byte, error)
}

func (f *fakeRenderer) RenderPayslip(d PayslipDetail, companyName string) ([]byte, error) {
	if f.payslipFn != nil {
		return f.payslipFn(d, companyName)
	}
	return []byte("%PDF-" + d.PayslipNumber), nil
}

func (f *fakeRenderer) RenderReport(details []PayslipDetail, companyName string, exportedAt time.Time) ([]byte, error) {
	if f.reportFn != nil {
		return f.reportFn(details, companyName, exportedAt)
	}
	return []byte("%PDF-report"), nil
}

type memoryStorage struct {
	files   map[string][]byte
	saveErr error
	saves   int
}

func (m *memoryStorage) Save(ctx context.Context, path string, content []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.files[path] = content
	return nil
}

func (m *memoryStorage) Read(ctx context.Context, path string) ([]byte, error) {
	b, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
	err    error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  *service
	repo     *fakeRepository
	counter  *fakeCounter
	renderer *fakeRenderer
	storage  *memoryStorage
	outbox   *fakeOutbox
	metrics  *Metrics
}

var fixedNow = time.Date(2025, 2, 3, 10, 4, 5, 0, time.UTC)

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		sqlMock:  sqlMock,
		repo:     &fakeRepository{},
		counter:  &fakeCounter{},
		renderer: &fakeRenderer{},
		storage:  &memoryStorage{files: map[string][]byte{}},
		outbox:   &fakeOutbox{},
		metrics:  NewMetrics(prometheus.NewRegistry()),
	}

	svc := NewServiceWithOutbox(db, deps.repo, deps.counter, deps.outbox, deps.renderer, deps.storage, deps.metrics, "PT Maju Jaya")
	deps.service = svc.(*service)
	deps.service.now = func() time.Time { return fixedNow }
	return deps
}

const companyID = "6f1c2b1e-0000-4000-8000-000000000001"

func entrySource(entryID string) *EntrySource {
	return &EntrySource{
		EntryID:        uuid.MustParse(entryID),
		CompanyID:      uuid.MustParse(companyID),
		PayrollRunID:   uuid.New(),
		EmployeeID:     uuid.New(),
		EmployeeNumber: "EMP001",
		PayPeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		PayDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestPayslipService_Generate(t *testing.T) {
	ctx := context.Background()
	scope := Scope{CompanyID: companyID, ReadAny: true}

	okEntry := uuid.NewString()
	existingEntry := uuid.NewString()
	missingEntry := uuid.NewString()

	t.Run("best effort over mixed entries", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.counter.next = 6

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			if id == missingEntry {
				return nil, gorm.ErrRecordNotFound
			}
			return entrySource(id), nil
		}
		deps.repo.existsForEntryFn = func(ctx context.Context, cid, id string) (bool, error) {
			return id == existingEntry, nil
		}

		var created *Payslip
		deps.repo.createFn = func(ctx context.Context, p *Payslip) error {
			created = p
			return nil
		}
		deps.repo.findDetailByEntryFn = func(ctx context.Context, cid, id string) (*PayslipDetail, error) {
			return &PayslipDetail{Payslip: *created, EmployeeName: "Budi"}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		result, err := deps.service.Generate(ctx, scope, []string{okEntry, existingEntry, missingEntry})
		require.NoError(t, err)

		assert.Equal(t, 1, result.GeneratedCount)
		assert.Equal(t, 2, result.SkippedCount)
		assert.Empty(t, result.Errors)

		require.NotNil(t, created)
		assert.Equal(t, "PS-20250131-EMP001-0007", created.PayslipNumber)
		assert.Equal(t, StatusGenerated, created.Status)
		assert.Equal(t, "payslips/"+companyID+"/ps-20250131-emp001-0007.pdf", created.FilePath)
		assert.Equal(t, []byte("%PDF-PS-20250131-EMP001-0007"), deps.storage.files[created.FilePath])

		assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.generated))
		assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.skipped.WithLabelValues(skipReasonAlreadyExists)))
		assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.skipped.WithLabelValues(skipReasonEntryMissing)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("render failure rolls back and is reported", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}
		deps.repo.findDetailByEntryFn = func(ctx context.Context, cid, id string) (*PayslipDetail, error) {
			return &PayslipDetail{}, nil
		}
		deps.renderer.payslipFn = func(d PayslipDetail, companyName string) ([]byte, error) {
			return nil, errors.New("font missing")
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		result, err := deps.service.Generate(ctx, scope, []string{okEntry})
		require.NoError(t, err)

		assert.Equal(t, 0, result.GeneratedCount)
		require.Len(t, result.Errors, 1)
		assert.True(t, strings.HasPrefix(result.Errors[0], "Failed to generate payslip for entry ID "+okEntry+": "))
		assert.Contains(t, result.Errors[0], "font missing")
		assert.Empty(t, deps.storage.files)
		assert.Equal(t, 1.0, testutil.ToFloat64(deps.metrics.errors))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate insert is a skip", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}
		deps.repo.createFn = func(ctx context.Context, p *Payslip) error {
			return errors.New("UNIQUE constraint failed: payslips.payroll_entry_id")
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		result, err := deps.service.Generate(ctx, scope, []string{okEntry})
		require.NoError(t, err)
		assert.Equal(t, 1, result.SkippedCount)
		assert.Empty(t, result.Errors)
	})

	t.Run("counter failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.counter.err = errors.New("db down")

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}

		result, err := deps.service.Generate(ctx, scope, []string{okEntry})
		require.NoError(t, err)
		assert.Equal(t, 0, result.GeneratedCount)
		assert.Len(t, result.Errors, 1)
	})

	t.Run("commit failure leaves no file behind", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}
		deps.repo.findDetailByEntryFn = func(ctx context.Context, cid, id string) (*PayslipDetail, error) {
			return &PayslipDetail{}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		result, err := deps.service.Generate(ctx, scope, []string{okEntry})
		require.NoError(t, err)

		assert.Equal(t, 0, result.GeneratedCount)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "connection reset")
		assert.Zero(t, deps.storage.saves)
		assert.Empty(t, deps.storage.files)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("storage failure after commit still counts as generated", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.storage.saveErr = errors.New("disk full")

		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}
		deps.repo.findDetailByEntryFn = func(ctx context.Context, cid, id string) (*PayslipDetail, error) {
			return &PayslipDetail{}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		result, err := deps.service.Generate(ctx, scope, []string{okEntry})
		require.NoError(t, err)

		assert.Equal(t, 1, result.GeneratedCount)
		assert.Empty(t, result.Errors)
		assert.Equal(t, 1, deps.storage.saves)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayslipService_BulkGenerate(t *testing.T) {
	ctx := context.Background()
	scope := Scope{CompanyID: companyID, ReadAny: true}

	t.Run("run not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkGenerate(ctx, scope, uuid.NewString())
		assert.ErrorIs(t, err, paysliperrors.ErrPayrollRunNotFound)
	})

	t.Run("all entries of the run", func(t *testing.T) {
		deps := setupServiceTest(t)
		runID := uuid.NewString()
		e1, e2 := uuid.NewString(), uuid.NewString()

		deps.repo.runExistsFn = func(ctx context.Context, cid, id string) (bool, error) {
			return id == runID, nil
		}
		deps.repo.findEntryIDsByRunFn = func(ctx context.Context, cid, id string) ([]string, error) {
			return []string{e1, e2}, nil
		}
		deps.repo.findEntrySourceFn = func(ctx context.Context, cid, id string) (*EntrySource, error) {
			return entrySource(id), nil
		}
		deps.repo.findDetailByEntryFn = func(ctx context.Context, cid, id string) (*PayslipDetail, error) {
			return &PayslipDetail{}, nil
		}

		for range 2 {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}

		result, err := deps.service.BulkGenerate(ctx, scope, runID)
		require.NoError(t, err)
		assert.Equal(t, 2, result.GeneratedCount)
		assert.Len(t, deps.storage.files, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayslipService_RequestBulkGenerate(t *testing.T) {
	scope := Scope{CompanyID: companyID, ReadAny: true}
	runID := uuid.NewString()

	t.Run("queues outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.runExistsFn = func(ctx context.Context, cid, id string) (bool, error) { return true, nil }

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		ctx := contextutil.WithRequestID(context.Background(), "req-1")
		resp, err := deps.service.RequestBulkGenerate(ctx, scope, runID)
		require.NoError(t, err)

		assert.Equal(t, BulkGenerateAccepted{PayrollRunID: runID, RequestID: "req-1", Status: "queued"}, resp)
		require.Len(t, deps.outbox.events, 1)

		event := deps.outbox.events[0]
		assert.Equal(t, events.PayslipBatchRequestedTopic, event.Topic)
		assert.Equal(t, runID, event.AggregateID)

		var payload events.PayslipBatchRequestedEvent
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, companyID, payload.CompanyID)
		assert.Equal(t, runID, payload.PayrollRunID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("run not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.RequestBulkGenerate(context.Background(), scope, runID)
		assert.ErrorIs(t, err, paysliperrors.ErrPayrollRunNotFound)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("outbox not configured", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.service.outbox = nil

		_, err := deps.service.RequestBulkGenerate(context.Background(), scope, runID)
		assert.ErrorIs(t, err, paysliperrors.ErrAsyncUnavailable)
	})
}

func TestPayslipService_Download(t *testing.T) {
	ctx := context.Background()
	scope := Scope{CompanyID: companyID, EmployeeID: uuid.NewString()}
	id := uuid.New()

	detail := func(path string) *PayslipDetail {
		return &PayslipDetail{Payslip: Payslip{ID: id, PayslipNumber: "PS-20250131-EMP001-0001", FilePath: path}}
	}

	t.Run("stored file", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.storage.files["payslips/x.pdf"] = []byte("stored")
		deps.repo.findDetailByIDFn = func(ctx context.Context, s Scope, pid string) (*PayslipDetail, error) {
			return detail("payslips/x.pdf"), nil
		}

		var markedAt time.Time
		deps.repo.markDownloadedFn = func(ctx context.Context, cid, pid string, at time.Time) error {
			markedAt = at
			return nil
		}

		file, err := deps.service.Download(ctx, scope, id.String())
		require.NoError(t, err)
		assert.Equal(t, "payslip-PS-20250131-EMP001-0001.pdf", file.FileName)
		assert.Equal(t, "application/pdf", file.ContentType)
		assert.Equal(t, []byte("stored"), file.Content)
		assert.Equal(t, fixedNow, markedAt)
	})

	t.Run("missing file is regenerated", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findDetailByIDFn = func(ctx context.Context, s Scope, pid string) (*PayslipDetail, error) {
			return detail(""), nil
		}

		var updatedPath string
		deps.repo.updateFilePathFn = func(ctx context.Context, cid, pid, path string) error {
			updatedPath = path
			return nil
		}

		file, err := deps.service.Download(ctx, scope, id.String())
		require.NoError(t, err)

		want := StoragePath(companyID, "PS-20250131-EMP001-0001")
		assert.Equal(t, want, updatedPath)
		assert.Equal(t, file.Content, deps.storage.files[want])
	})

	t.Run("not visible", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Download(ctx, Scope{CompanyID: companyID}, id.String())
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Download(ctx, scope, id.String())
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}

func TestPayslipService_List(t *testing.T) {
	ctx := context.Background()
	scope := Scope{CompanyID: companyID, ReadAny: true}

	t.Run("default pagination and mapping", func(t *testing.T) {
		deps := setupServiceTest(t)

		var got ListQuery
		deps.repo.findPageFn = func(ctx context.Context, s Scope, q ListQuery) ([]PayslipDetail, int64, error) {
			got = q
			return []PayslipDetail{{
				Payslip:      Payslip{ID: uuid.New(), PayslipNumber: "PS-1", FilePath: "a.pdf"},
				EmployeeName: "Budi",
				NetPay:       decimal.NewFromInt(5760000),
			}}, 11, nil
		}

		page, err := deps.service.List(ctx, scope, ListPayslipsFilter{})
		require.NoError(t, err)

		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 0, got.Offset)
		assert.Empty(t, got.OrderBy)
		assert.Equal(t, int64(11), page.Total)
		assert.Equal(t, 1, page.Page)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Budi", page.Items[0].EmployeeName)
		assert.True(t, page.Items[0].HasFile)
	})

	t.Run("filters are parsed", func(t *testing.T) {
		deps := setupServiceTest(t)

		var got ListQuery
		deps.repo.findPageFn = func(ctx context.Context, s Scope, q ListQuery) ([]PayslipDetail, int64, error) {
			got = q
			return nil, 0, nil
		}

		page, err := deps.service.List(ctx, scope, ListPayslipsFilter{
			DateFrom:      "2025-01-01",
			DateTo:        "2025-01-31",
			SortField:     "employee_name",
			SortDirection: "asc",
			Page:          3,
			PerPage:       5,
		})
		require.NoError(t, err)

		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)
		assert.Equal(t, "employees.full_name ASC", got.OrderBy)
		require.NotNil(t, got.From)
		assert.Equal(t, "2025-01-01", got.From.Format(dateLayout))
		assert.Equal(t, 3, page.Page)
		assert.NotNil(t, page.Items)
	})

	t.Run("invalid input", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.List(ctx, scope, ListPayslipsFilter{DateFrom: "31-01-2025"})
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidDateFilter)

		_, err = deps.service.List(ctx, scope, ListPayslipsFilter{SortField: "password"})
		assert.ErrorIs(t, err, paysliperrors.ErrInvalidSortField)
	})

	t.Run("no permission yields empty page", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.findPageFn = func(ctx context.Context, s Scope, q ListQuery) ([]PayslipDetail, int64, error) {
			t.Fatal("repository must not be queried")
			return nil, 0, nil
		}

		page, err := deps.service.List(ctx, Scope{CompanyID: companyID}, ListPayslipsFilter{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.Total)
	})
}

func TestPayslipService_Export(t *testing.T) {
	ctx := context.Background()
	scope := Scope{CompanyID: companyID, ReadAny: true}

	t.Run("excel ignores pagination", func(t *testing.T) {
		deps := setupServiceTest(t)

		var got ListQuery
		deps.repo.findPageFn = func(ctx context.Context, s Scope, q ListQuery) ([]PayslipDetail, int64, error) {
			got = q
			return nil, 0, nil
		}

		file, err := deps.service.ExportExcel(ctx, scope, ListPayslipsFilter{Page: 2, PerPage: 5})
		require.NoError(t, err)

		assert.Equal(t, 0, got.Limit)
		assert.Equal(t, "Payslips_2025-02-03_100405.xlsx", file.FileName)
		assert.Equal(t, excelContentType, file.ContentType)
		assert.NotEmpty(t, file.Content)
	})

	t.Run("pdf uses renderer", func(t *testing.T) {
		deps := setupServiceTest(t)

		var exportedAt time.Time
		deps.renderer.reportFn = func(details []PayslipDetail, companyName string, at time.Time) ([]byte, error) {
			exportedAt = at
			assert.Equal(t, "PT Maju Jaya", companyName)
			return []byte("%PDF-report"), nil
		}

		file, err := deps.service.ExportPDF(ctx, scope, ListPayslipsFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Payslips_2025-02-03_100405.pdf", file.FileName)
		assert.Equal(t, fixedNow, exportedAt)
	})

	t.Run("pdf render failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.renderer.reportFn = func(details []PayslipDetail, companyName string, at time.Time) ([]byte, error) {
			return nil, errors.New("boom")
		}

		_, err := deps.service.ExportPDF(ctx, scope, ListPayslipsFilter{})
		assert.ErrorIs(t, err, paysliperrors.ErrRenderFailed)
	})
}

func TestPayslipNumber(t *testing.T) {
	src := EntrySource{
		EmployeeID: uuid.MustParse("a1b2c3d4-e5f6-4000-8000-000000000000"),
		PayDate:    time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "PS-20250325-A1B2C3D4-0042", payslipNumber(src, 42))

	src.EmployeeNumber = "EMP-007"
	assert.Equal(t, "PS-20250325-EMP-007-0001", payslipNumber(src, 1))
}
