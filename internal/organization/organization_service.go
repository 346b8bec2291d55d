package organization

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	organizationerrors "go-payroll/internal/organization/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateDepartment(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	ListDepartments(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, companyID, id string) error
	CreatePosition(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error)
	ListPositions(ctx context.Context, companyID string, filter ListPositionsFilter) ([]PositionResponse, error)
	DeletePosition(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("organization.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("organization.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CreateDepartment(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, organizationerrors.ErrInvalidCompanyID
	}

	dept := &Department{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      strings.TrimSpace(req.Name),
	}
	if err := s.repo.CreateDepartment(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("department created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("department_id", dept.ID.String()),
	)
	return mapDepartment(*dept), nil
}

func (s *service) ListDepartments(ctx context.Context, companyID string) ([]DepartmentResponse, error) {
	depts, err := s.repo.ListDepartments(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapDepartment(d)
	}
	return res, nil
}

// DeleteDepartment menolak department yang masih punya position.
func (s *service) DeleteDepartment(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindDepartment(ctx, companyID, id); err != nil {
		return mapNotFound(err, organizationerrors.ErrDepartmentNotFound)
	}

	count, err := qtx.CountPositions(ctx, companyID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return organizationerrors.ErrDepartmentInUse
	}

	if err := qtx.DeleteDepartment(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) CreatePosition(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PositionResponse{}, organizationerrors.ErrInvalidCompanyID
	}

	dept, err := s.repo.FindDepartment(ctx, companyID, req.DepartmentID)
	if err != nil {
		return PositionResponse{}, mapNotFound(err, organizationerrors.ErrDepartmentNotFound)
	}

	pos := &Position{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		DepartmentID: dept.ID,
		Name:         strings.TrimSpace(req.Name),
	}
	if err := s.repo.CreatePosition(ctx, pos); err != nil {
		return PositionResponse{}, err
	}
	pos.DepartmentName = dept.Name

	return mapPosition(*pos), nil
}

func (s *service) ListPositions(ctx context.Context, companyID string, filter ListPositionsFilter) ([]PositionResponse, error) {
	positions, err := s.repo.ListPositions(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapPosition(p)
	}
	return res, nil
}

func (s *service) DeletePosition(ctx context.Context, companyID, id string) error {
	affected, err := s.repo.DeletePosition(ctx, companyID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return organizationerrors.ErrPositionNotFound
	}
	return nil
}

func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func mapDepartment(d Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID.String(), Name: d.Name}
}

func mapPosition(p Position) PositionResponse {
	return PositionResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		DepartmentID:   p.DepartmentID.String(),
		DepartmentName: p.DepartmentName,
	}
}
