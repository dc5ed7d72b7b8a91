package employee

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"`
	Email      string    `gorm:"column:email;type:text;not null;uniqueIndex:uq_employees_email"`
	Position   string    `gorm:"column:position;type:varchar(255);not null"`
	Department string    `gorm:"column:department;type:varchar(255);not null;index"`
	Salary     float64   `gorm:"column:salary;not null"`
	HireDate   time.Time `gorm:"column:hire_date;type:date;not null"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
