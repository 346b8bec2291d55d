// Package events berisi topic Kafka dan payload JSON yang dipublikasikan
// lewat outbox. Payload bersifat append-only: field baru boleh ditambah,
// field lama tidak boleh diubah artinya.
package events

import "time"

const (
	EmployeeLifecycleTopic   = "hr.employee.lifecycle.v1"
	EmployeeCreatedEventType = "employee.created"

	PayslipBatchRequestedTopic     = "hr.payroll.payslip.requested.v1"
	PayslipBatchRequestedEventType = "payslip.batch.requested"
)

// Aggregate type yang dipakai sebagai key pesan.
const (
	AggregateEmployee   = "employee"
	AggregatePayrollRun = "payroll_run"
)

// EmployeeCreatedEvent memicu pembuatan gaji default karyawan baru.
type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number,omitempty"`
	CompanyID      string    `json:"company_id"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PayslipBatchRequestedEvent meminta pembuatan payslip untuk satu payroll run.
// EntryIDs kosong berarti semua entry di run tersebut.
type PayslipBatchRequestedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	PayrollRunID string    `json:"payroll_run_id"`
	EntryIDs     []string  `json:"entry_ids,omitempty"`
	CompanyID    string    `json:"company_id"`
	RequestedBy  string    `json:"requested_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
