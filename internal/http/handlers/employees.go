package handlers

import (
	"net/http"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type employeePayload struct {
	ClientID     string `json:"clientId" binding:"required,uuid"`
	EmployeeCode string `json:"employeeCode" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	HomeAddress  string `json:"homeAddress"`
	PickupPoint  string `json:"pickupPoint"`
	Active       *bool  `json:"active"`
}

// GET /api/employees?clientId=&q=
func GetEmployees(c *gin.Context) {
	clientID, ok := QueryUUID(c, "clientId")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	employees, err := repositories.EmployeeRepository{}.List(clientID, c.Query("q"), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GET /api/employees/:id
func GetEmployeeByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	employee, err := repositories.EmployeeRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// POST /api/employees
func CreateEmployee(c *gin.Context) {
	var req employeePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.EmployeeRepository{}
	clientID := uuid.MustParse(req.ClientID)

	code := strings.TrimSpace(req.EmployeeCode)
	exists, err := repo.ExistsByCode(clientID, code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "employee", Msg: "employee code already in use for this client"})
		return
	}

	employee := models.Employee{
		ID:           uuid.New(),
		ClientID:     clientID,
		EmployeeCode: code,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Department:   strings.TrimSpace(req.Department),
		HomeAddress:  strings.TrimSpace(req.HomeAddress),
		PickupPoint:  strings.TrimSpace(req.PickupPoint),
		Active:       true,
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if err := repo.Insert(employee); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "employees", "create", "employee="+employee.ID.String())
	c.JSON(http.StatusCreated, employee)
}

// PUT /api/employees/:id
func UpdateEmployee(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req employeePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.EmployeeRepository{}
	employee, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	employee.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	employee.Name = strings.TrimSpace(req.Name)
	employee.Email = strings.TrimSpace(req.Email)
	employee.Phone = strings.TrimSpace(req.Phone)
	employee.Department = strings.TrimSpace(req.Department)
	employee.HomeAddress = strings.TrimSpace(req.HomeAddress)
	employee.PickupPoint = strings.TrimSpace(req.PickupPoint)
	if req.Active != nil {
		employee.Active = *req.Active
	}
	if err := repo.Update(employee); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "employees", "update", "employee="+employee.ID.String())
	c.JSON(http.StatusOK, employee)
}

// DELETE /api/employees/:id
func DeleteEmployee(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.EmployeeRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "employees", "delete", "employee="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
