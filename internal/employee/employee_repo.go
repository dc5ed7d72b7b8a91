package employee

import (
	"context"
	"database/sql"
	"go-ems/internal/scope"

	"gorm.io/gorm"
)

// ListFilter is the already-normalized filter set for a listing query.
type ListFilter struct {
	Department string
	Status     string
	Search     string
	Offset     int
	Limit      int
}

// DepartmentAggregate is one grouped row of the department breakdown.
type DepartmentAggregate struct {
	Department string
	Count      int64
	AvgSalary  float64
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	Update(ctx context.Context, empl *Employee, fields map[string]any) error
	Delete(ctx context.Context, id uint) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	AggregateByDepartment(ctx context.Context, status string) ([]DepartmentAggregate, error)
	FindRecent(ctx context.Context, limit int) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn binds the session to the caller's transaction when one is set,
// so the employee row and its outbox event commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

// List counts the filtered set first, then fetches one page ordered
// newest-first with id as the deterministic tie-break.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	scopes := []func(*gorm.DB) *gorm.DB{
		scope.Department(filter.Department),
		scope.Status(filter.Status),
		scope.Search(filter.Search),
	}

	var total int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Scopes(scopes...).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err = r.conn(ctx).
		Scopes(scopes...).
		Order("created_at DESC, id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&employees).Error

	return employees, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

// Update applies only the supplied columns. GORM writes the map values
// back onto empl, so the caller gets the updated record.
func (r *repository) Update(ctx context.Context, empl *Employee, fields map[string]any) error {
	return r.conn(ctx).
		Model(empl).
		Updates(fields).Error
}

// Delete removes the row permanently and reports how many rows matched,
// so a missing id can be told apart from a successful delete.
func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.conn(ctx).
		Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Scopes(scope.Status(status)).
		Count(&count).Error
	return count, err
}

func (r *repository) AggregateByDepartment(ctx context.Context, status string) ([]DepartmentAggregate, error) {
	var aggs []DepartmentAggregate
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("department, COUNT(id) AS count, COALESCE(AVG(salary), 0) AS avg_salary").
		Scopes(scope.Status(status)).
		Group("department").
		Order("department ASC").
		Scan(&aggs).Error
	return aggs, err
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Employee, error) {
	var employees []Employee
	err := r.conn(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&employees).Error
	return employees, err
}
