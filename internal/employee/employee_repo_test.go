package employee_test

import (
	"context"
	"testing"
	"time"

	"go-ems/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	assert.NoError(t, err)

	return employee.NewRepository(gormDB), mock
}

func employeeRows(ids ...uint) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "position", "department",
		"salary", "hire_date", "status", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(
			id, "Employee", "e@example.com", "Engineer", "IT",
			5000000.0, time.Now(), "active", time.Now(), time.Now(),
		)
	}
	return rows
}

func TestEmployeeRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("counts the filtered set before paginating", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		// Expectations are ordered: the count must run before the page fetch.
		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE department = \$1`).
			WithArgs("IT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE department = \$1 ORDER BY created_at DESC, id DESC LIMIT (\$\d+|10) OFFSET (\$\d+|10)`).
			WillReturnRows(employeeRows(12, 11))

		employees, total, err := repo.List(ctx, employee.ListFilter{
			Department: "IT",
			Offset:     10,
			Limit:      10,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(25), total)
		assert.Len(t, employees, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("orders newest first with id as the tie-break", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(`SELECT \* FROM "employees" ORDER BY created_at DESC, id DESC LIMIT (\$\d+|10)`).
			WillReturnRows(employeeRows(2, 1))

		employees, _, err := repo.List(ctx, employee.ListFilter{Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, uint(2), employees[0].ID)
		assert.Equal(t, uint(1), employees[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search composes the case-insensitive or-group with the exact filters", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		orGroup := `\(name ILIKE \$\d+ OR email ILIKE \$\d+ OR position ILIKE \$\d+ OR department ILIKE \$\d+\)`

		mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE department = \$1 AND status = \$2 AND ` + orGroup).
			WithArgs("IT", "active", "%doe%", "%doe%", "%doe%", "%doe%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT \* FROM "employees" WHERE department = \$1 AND status = \$2 AND ` + orGroup + ` ORDER BY created_at DESC, id DESC`).
			WillReturnRows(employeeRows(1))

		_, total, err := repo.List(ctx, employee.ListFilter{
			Department: "IT",
			Status:     "active",
			Search:     "doe",
			Limit:      10,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeRepository_FindRecent(t *testing.T) {
	t.Run("bounded and newest first regardless of status", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(`SELECT \* FROM "employees" ORDER BY created_at DESC, id DESC LIMIT (\$\d+|20)`).
			WillReturnRows(employeeRows(3, 2, 1))

		employees, err := repo.FindRecent(context.Background(), 20)

		assert.NoError(t, err)
		assert.Len(t, employees, 3)
		assert.Equal(t, uint(3), employees[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeRepository_AggregateByDepartment(t *testing.T) {
	t.Run("groups active employees by department", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(`SELECT department, COUNT\(id\) AS count, COALESCE\(AVG\(salary\), 0\) AS avg_salary FROM "employees" WHERE status = \$1 GROUP BY .?department.? ORDER BY department ASC`).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"department", "count", "avg_salary"}).
				AddRow("HR", 1, 9000000.0).
				AddRow("IT", 2, 6000000.0))

		aggs, err := repo.AggregateByDepartment(context.Background(), employee.StatusActive)

		assert.NoError(t, err)
		assert.Len(t, aggs, 2)
		assert.Equal(t, "IT", aggs[1].Department)
		assert.Equal(t, int64(2), aggs[1].Count)
		assert.Equal(t, 6000000.0, aggs[1].AvgSalary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeRepository_CountByStatus(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "employees" WHERE status = \$1`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByStatus(context.Background(), employee.StatusActive)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Delete(t *testing.T) {
	t.Run("reports rows affected", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
			WithArgs(uint(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.Delete(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows for an unknown id", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(`DELETE FROM "employees" WHERE id = \$1`).
			WithArgs(uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.Delete(context.Background(), 99)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
