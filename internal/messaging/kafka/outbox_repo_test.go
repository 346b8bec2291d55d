package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	event, err := kafka.NewOutboxEvent("topic.v1", "thing.happened", "thing", "agg-1", "req-1", map[string]string{"a": "b"})

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.Equal(t, "req-1", event.RequestID)
	assert.JSONEq(t, `{"a":"b"}`, string(event.Payload))

	_, err = kafka.NewOutboxEvent("", "thing.happened", "thing", "agg-1", "", map[string]string{})
	assert.Error(t, err)
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	payload, _ := json.Marshal(map[string]string{"k": "v"})
	event := kafka.OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "payroll_run",
		AggregateID:   "run-1",
		EventType:     "payslip.batch.requested",
		Topic:         "hr.payroll.payslip.requested.v1",
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_RejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{ID: "x", Topic: "t", Status: "weird", Payload: []byte("{}")})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("evt-1", "req-1", "employee", "emp-1", "employee.created", "hr.employee.lifecycle.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, 50).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "employee.created", events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed_TruncatesReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reason := strings.Repeat("x", 600)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("evt-1", kafka.OutboxStatusFailed, strings.Repeat("x", 500)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "evt-1", reason))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxEvent_Validate(t *testing.T) {
	base := kafka.OutboxEvent{ID: "evt-1", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}

	assert.NoError(t, base.Validate())

	noTopic := base
	noTopic.Topic = ""
	assert.ErrorIs(t, noTopic.Validate(), kafka.ErrOutboxTopicRequired)

	noPayload := base
	noPayload.Payload = nil
	assert.ErrorIs(t, noPayload.Validate(), kafka.ErrOutboxPayloadRequired)
}
