package salarycomponent

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	salarycomponenterrors "go-payroll/internal/salarycomponent/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ActiveComponentsKeyPrefix = "salary_components:active:"

const activeComponentsTTL = 1 * time.Hour

func GetActiveComponentsKey(companyID string) string {
	return ActiveComponentsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListSalaryComponentsFilter) ([]SalaryComponentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryComponentRequest) (SalaryComponentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	FindActive(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarycomponent.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarycomponent.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryComponentResponse{}, salarycomponenterrors.ErrInvalidCompanyID
	}

	amount, pct, err := validateValues(req.CalculationType, req.DefaultAmount, req.PercentageOfBasic)
	if err != nil {
		return SalaryComponentResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	component := &SalaryComponent{
		ID:                uuid.New(),
		CompanyID:         companyUUID,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Type:              req.Type,
		CalculationType:   req.CalculationType,
		DefaultAmount:     amount,
		PercentageOfBasic: pct,
		Status:            status,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, component); err != nil {
		log.Error("create salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary component commit failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}

	s.invalidateActive(ctx, companyID)
	log.Info("salary component created",
		zap.String("company_id", companyID),
		zap.String("component_id", component.ID.String()),
	)

	return mapToResponse(*component), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListSalaryComponentsFilter,
) ([]SalaryComponentResponse, error) {
	components, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get salary components failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(components), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryComponentResponse, error) {
	component, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*component), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryComponentRequest,
) (SalaryComponentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	amount, pct, err := validateValues(req.CalculationType, req.DefaultAmount, req.PercentageOfBasic)
	if err != nil {
		return SalaryComponentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update salary component begin tx failed", zap.Error(err))
		return SalaryComponentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	component, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	component.Name = strings.TrimSpace(req.Name)
	component.Description = req.Description
	component.Type = req.Type
	component.CalculationType = req.CalculationType
	component.DefaultAmount = amount
	component.PercentageOfBasic = pct
	component.Status = req.Status

	if err := qtx.Update(ctx, component); err != nil {
		log.Error("update salary component persist failed", zap.Error(err))
		return SalaryComponentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryComponentResponse{}, err
	}

	s.invalidateActive(ctx, companyID)

	return mapToResponse(*component), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateActive(ctx, companyID)
	return nil
}

// FindActive mengembalikan komponen aktif milik company yang id-nya ada di ids.
// Katalog aktif di-cache per company; id yang tidak ditemukan tidak ikut dikembalikan.
func (s *service) FindActive(ctx context.Context, companyID string, ids []string) ([]SalaryComponent, error) {
	if len(ids) == 0 {
		return []SalaryComponent{}, nil
	}

	if s.rdb == nil {
		valid := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, err := uuid.Parse(id); err == nil {
				valid = append(valid, id)
			}
		}
		components, err := s.repo.FindActiveByIDs(ctx, companyID, valid)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		return components, nil
	}

	catalog, err := s.activeCatalog(ctx, companyID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	result := make([]SalaryComponent, 0, len(ids))
	for _, c := range catalog {
		if _, ok := wanted[c.ID.String()]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *service) activeCatalog(ctx context.Context, companyID string) ([]SalaryComponent, error) {
	cacheKey := GetActiveComponentsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var components []SalaryComponent
			if json.Unmarshal([]byte(cached), &components) == nil {
				return components, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		components, err := s.repo.FindActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(components); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, activeComponentsTTL).Err(); err != nil {
					s.logger.Warn("cache active salary components failed",
						zap.String("key", cacheKey),
						zap.Error(err),
					)
				}
			}
		}

		return components, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]SalaryComponent), nil
}

func (s *service) invalidateActive(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetActiveComponentsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate active salary components cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func validateValues(calculationType string, amount, pct *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	a := decimal.Zero
	if amount != nil {
		a = *amount
	}
	p := decimal.Zero
	if pct != nil {
		p = *pct
	}

	if a.IsNegative() {
		return decimal.Zero, decimal.Zero, salarycomponenterrors.ErrNegativeAmount
	}
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, decimal.Zero, salarycomponenterrors.ErrInvalidPercentage
	}
	if calculationType == CalculationPercentage && pct == nil {
		return decimal.Zero, decimal.Zero, salarycomponenterrors.ErrPercentageRequired
	}

	return a, p, nil
}

func mapToResponse(c SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Description:       c.Description,
		Type:              c.Type,
		CalculationType:   c.CalculationType,
		DefaultAmount:     c.DefaultAmount,
		PercentageOfBasic: c.PercentageOfBasic,
		Status:            c.Status,
	}
}

func mapToListResponse(components []SalaryComponent) []SalaryComponentResponse {
	res := make([]SalaryComponentResponse, len(components))
	for i, c := range components {
		res[i] = mapToResponse(c)
	}
	return res
}
