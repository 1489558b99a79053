package main

import (
	"net/http"

	"kadra/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func employeeJSON(e *models.Employee) gin.H {
	return gin.H{
		"id":          e.ID,
		"first_name":  e.FirstName,
		"last_name":   e.LastName,
		"email":       e.Email,
		"phone":       e.Phone,
		"position":    e.Position,
		"hourly_rate": e.HourlyRate,
	}
}

func listEmployeesHandler(c *gin.Context) {
	var employees []models.Employee
	if err := db.Where("manager_id = ?", currentManager(c)).Order("id").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(employees))
	for i := range employees {
		out = append(out, employeeJSON(&employees[i]))
	}
	c.JSON(http.StatusOK, out)
}

func createEmployeeHandler(c *gin.Context) {
	var req struct {
		FirstName  string          `json:"first_name" binding:"required"`
		LastName   string          `json:"last_name" binding:"required"`
		Email      string          `json:"email" binding:"required,email"`
		Phone      string          `json:"phone"`
		Position   string          `json:"position"`
		HourlyRate decimal.Decimal `json:"hourly_rate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var existing models.Employee
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}
	employee := models.Employee{
		ManagerID:  currentManager(c),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
	}
	if err := db.Create(&employee).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, employeeJSON(&employee))
}

func getEmployeeHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	employee, err := ownedEmployee(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeeJSON(employee))
}

func updateEmployeeHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	employee, err := ownedEmployee(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	// Allow-listed partial update; client keys outside this set are ignored.
	var req struct {
		FirstName  *string          `json:"first_name"`
		LastName   *string          `json:"last_name"`
		Email      *string          `json:"email"`
		Phone      *string          `json:"phone"`
		Position   *string          `json:"position"`
		HourlyRate *decimal.Decimal `json:"hourly_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil && *req.Email != employee.Email {
		var existing models.Employee
		if err := db.Where("email = ?", *req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		employee.Email = *req.Email
	}
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.HourlyRate != nil {
		employee.HourlyRate = *req.HourlyRate
	}
	if err := db.Save(employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, employeeJSON(employee))
}

func deleteEmployeeHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	employee, err := ownedEmployee(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if err := db.Delete(employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func listEmployeeCostsHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedEmployee(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var costs []models.EmployeeCost
	if err := db.Where("employee_id = ?", id).Order("date desc").Find(&costs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(costs))
	for i := range costs {
		out = append(out, gin.H{
			"id":          costs[i].ID,
			"description": costs[i].Description,
			"amount":      costs[i].Amount,
			"date":        costs[i].Date.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, out)
}

func createEmployeeCostHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedEmployee(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		Description string          `json:"description" binding:"required"`
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Date        string          `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseISODate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cost := models.EmployeeCost{
		EmployeeID:  id,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}
	if err := db.Create(&cost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          cost.ID,
		"description": cost.Description,
		"amount":      cost.Amount,
		"date":        cost.Date.Format("2006-01-02"),
	})
}

func listEmployeeRevenuesHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedEmployee(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var revenues []models.EmployeeRevenue
	if err := db.Where("employee_id = ?", id).Order("date desc").Find(&revenues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(revenues))
	for i := range revenues {
		out = append(out, gin.H{
			"id":          revenues[i].ID,
			"description": revenues[i].Description,
			"amount":      revenues[i].Amount,
			"date":        revenues[i].Date.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, out)
}

func createEmployeeRevenueHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedEmployee(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		Description string          `json:"description" binding:"required"`
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Date        string          `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseISODate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	revenue := models.EmployeeRevenue{
		EmployeeID:  id,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}
	if err := db.Create(&revenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          revenue.ID,
		"description": revenue.Description,
		"amount":      revenue.Amount,
		"date":        revenue.Date.Format("2006-01-02"),
	})
}
