package employee

type CreateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required,min=3"`
	Email      string  `json:"email" binding:"required,email"`
	Position   string  `json:"position" binding:"required,min=2"`
	Department string  `json:"department" binding:"required,min=2"`
	Salary     float64 `json:"salary" binding:"required,gt=0"`
	HireDate   string  `json:"hire_date" binding:"required,hiredate"`
	Status     string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateEmployeeRequest carries a partial payload: nil fields are left
// untouched on the stored record.
type UpdateEmployeeRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=3"`
	Email      *string  `json:"email" binding:"omitempty,email"`
	Position   *string  `json:"position" binding:"omitempty,min=2"`
	Department *string  `json:"department" binding:"omitempty,min=2"`
	Salary     *float64 `json:"salary" binding:"omitempty,gt=0"`
	HireDate   *string  `json:"hire_date" binding:"omitempty,hiredate"`
	Status     *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ListEmployeesQuery struct {
	Department string
	Status     string
	Search     string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hire_date"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

type DepartmentStat struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
	AvgSalary  int64  `json:"avgSalary"`
}

// RecentEmployeeResponse is the reduced projection used on the dashboard.
type RecentEmployeeResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status"`
	HireDate   string `json:"hire_date"`
}

type StatsResponse struct {
	TotalEmployees int64                    `json:"totalEmployees"`
	Breakdown      []DepartmentStat         `json:"breakdown"`
	Recent         []RecentEmployeeResponse `json:"recent"`
}
