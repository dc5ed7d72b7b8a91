package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	employeeerrors "go-ems/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	StatsCacheKey = "employees:stats"
	StatsCacheTTL = time.Minute

	// RecentHiresLimit bounds the dashboard's recent list.
	RecentHiresLimit = 20

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, query ListEmployeesQuery) ([]EmployeeResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	minSalary float64
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, 0, logger...)
}

// NewServiceWithOutbox wires the optional lifecycle outbox and the
// configurable salary floor (0 disables the floor).
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	minSalary float64,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		minSalary: minSalary,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	if s.minSalary > 0 && req.Salary < s.minSalary {
		s.logger.Warn("create employee salary below configured minimum",
			zap.Float64("salary", req.Salary),
			zap.Float64("min_salary", s.minSalary),
		)
		return EmployeeResponse{}, employeeerrors.ErrSalaryBelowMinimum(s.minSalary)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		Name:       req.Name,
		Email:      req.Email,
		Position:   req.Position,
		Department: req.Department,
		Salary:     req.Salary,
		HireDate:   hireDate,
		Status:     status,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EmployeeCreated, empl.ID); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context, query ListEmployeesQuery) ([]EmployeeResponse, response.PaginationMeta, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	s.logger.Debug("list employees requested",
		zap.String("department", query.Department),
		zap.String("status", query.Status),
		zap.String("search", query.Search),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	employees, total, err := s.repo.List(ctx, ListFilter{
		Department: query.Department,
		Status:     query.Status,
		Search:     query.Search,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, response.PaginationMeta{}, mapRepositoryError(err)
	}

	return mapToListResponse(employees), response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Salary != nil {
		if s.minSalary > 0 && *req.Salary < s.minSalary {
			return EmployeeResponse{}, employeeerrors.ErrSalaryBelowMinimum(s.minSalary)
		}
		fields["salary"] = *req.Salary
	}
	if req.HireDate != nil {
		hireDate, err := parseHireDate(*req.HireDate)
		if err != nil {
			s.logger.Warn("update employee invalid hire_date",
				zap.String("hire_date", *req.HireDate),
				zap.Error(err),
			)
			return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
		}
		fields["hire_date"] = hireDate
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if len(fields) > 0 {
		if err := qtx.Update(ctx, empl, fields); err != nil {
			s.logger.Error("update employee persist failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EmployeeUpdated, empl.ID); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EmployeeDeleted, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)
	return nil
}

// Stats serves the dashboard aggregates over active employees, cached in
// Redis behind singleflight so bursts do not stampede the database.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, StatsCacheKey).Result(); err == nil {
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(StatsCacheKey, func() (interface{}, error) {
		resp, err := s.computeStats(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, StatsCacheKey, jsonData, StatsCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) computeStats(ctx context.Context) (StatsResponse, error) {
	total, err := s.repo.CountByStatus(ctx, StatusActive)
	if err != nil {
		s.logger.Error("stats count failed", zap.Error(err))
		return StatsResponse{}, mapRepositoryError(err)
	}

	aggs, err := s.repo.AggregateByDepartment(ctx, StatusActive)
	if err != nil {
		s.logger.Error("stats breakdown failed", zap.Error(err))
		return StatsResponse{}, mapRepositoryError(err)
	}

	breakdown := make([]DepartmentStat, 0, len(aggs))
	for _, a := range aggs {
		if a.Count == 0 {
			continue
		}
		avg := a.AvgSalary
		if math.IsNaN(avg) {
			avg = 0
		}
		breakdown = append(breakdown, DepartmentStat{
			Department: a.Department,
			Count:      a.Count,
			AvgSalary:  int64(math.Round(avg)),
		})
	}

	recent, err := s.repo.FindRecent(ctx, RecentHiresLimit)
	if err != nil {
		s.logger.Error("stats recent failed", zap.Error(err))
		return StatsResponse{}, mapRepositoryError(err)
	}

	recentResp := make([]RecentEmployeeResponse, len(recent))
	for i, e := range recent {
		recentResp[i] = RecentEmployeeResponse{
			ID:         e.ID,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			Status:     e.Status,
			HireDate:   e.HireDate.Format("2006-01-02"),
		}
	}

	return StatsResponse{
		TotalEmployees: total,
		Breakdown:      breakdown,
		Recent:         recentResp,
	}, nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, employeeID uint) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: employeeID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   strconv.FormatUint(uint64(employeeID), 10),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("lifecycle outbox persist failed",
			zap.Uint("employee_id", employeeID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateStatsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, StatsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate stats cache",
			zap.Error(err),
			zap.String("key", StatsCacheKey),
		)
	}
}

// normalizePage clamps page to >= 1 and limit to [1, MaxPageLimit],
// falling back to the defaults when unset.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// parseHireDate accepts a plain date or an RFC3339 timestamp and
// normalizes to the date portion. The timestamp's own offset decides the
// calendar date, so 2026-01-01T23:00:00+07:00 stays on 2026-01-01.
func parseHireDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         empl.ID,
		Name:       empl.Name,
		Email:      empl.Email,
		Position:   empl.Position,
		Department: empl.Department,
		Salary:     empl.Salary,
		HireDate:   empl.HireDate.Format("2006-01-02"),
		Status:     empl.Status,
		CreatedAt:  empl.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
