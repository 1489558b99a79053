package main

import (
	"net/http"

	"kadra/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func workplaceJSON(w *models.Workplace) gin.H {
	return gin.H{
		"id":          w.ID,
		"name":        w.Name,
		"address":     w.Address,
		"description": w.Description,
	}
}

func listWorkplacesHandler(c *gin.Context) {
	var workplaces []models.Workplace
	if err := db.Where("manager_id = ?", currentManager(c)).Order("id").Find(&workplaces).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(workplaces))
	for i := range workplaces {
		out = append(out, workplaceJSON(&workplaces[i]))
	}
	c.JSON(http.StatusOK, out)
}

func createWorkplaceHandler(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Address     string `json:"address" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workplace := models.Workplace{
		ManagerID:   currentManager(c),
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}
	if err := db.Create(&workplace).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, workplaceJSON(&workplace))
}

func getWorkplaceHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	workplace, err := ownedWorkplace(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, workplaceJSON(workplace))
}

func updateWorkplaceHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	workplace, err := ownedWorkplace(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		Name        *string `json:"name"`
		Address     *string `json:"address"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		workplace.Name = *req.Name
	}
	if req.Address != nil {
		workplace.Address = *req.Address
	}
	if req.Description != nil {
		workplace.Description = *req.Description
	}
	if err := db.Save(workplace).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, workplaceJSON(workplace))
}

func deleteWorkplaceHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	workplace, err := ownedWorkplace(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if err := db.Delete(workplace).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func listWorkplaceEmployeesHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedWorkplace(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var assignments []models.WorkplaceAssignment
	if err := db.Preload("Employee").Where("workplace_id = ?", id).Order("start_date").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		entry := gin.H{
			"id":         a.Employee.ID,
			"first_name": a.Employee.FirstName,
			"last_name":  a.Employee.LastName,
			"email":      a.Employee.Email,
			"start_date": a.StartDate.Format("2006-01-02"),
			"end_date":   nil,
		}
		if a.EndDate != nil {
			entry["end_date"] = a.EndDate.Format("2006-01-02")
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

func assignEmployeeHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	managerID := currentManager(c)
	if _, err := ownedWorkplace(managerID, id); err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		EmployeeID uint   `json:"employee_id" binding:"required"`
		StartDate  string `json:"start_date" binding:"required"`
		EndDate    string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee, err := ownedEmployee(managerID, req.EmployeeID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	start, err := parseISODate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assignment := models.WorkplaceAssignment{
		EmployeeID:  employee.ID,
		WorkplaceID: id,
		StartDate:   start,
	}
	if req.EndDate != "" {
		end, err := parseISODate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date before start_date"})
			return
		}
		assignment.EndDate = &end
	}
	if err := db.Create(&assignment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	resp := gin.H{
		"employee_id":  assignment.EmployeeID,
		"workplace_id": assignment.WorkplaceID,
		"start_date":   assignment.StartDate.Format("2006-01-02"),
		"end_date":     nil,
	}
	if assignment.EndDate != nil {
		resp["end_date"] = assignment.EndDate.Format("2006-01-02")
	}
	c.JSON(http.StatusCreated, resp)
}

func listWorkplaceCostsHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedWorkplace(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var costs []models.WorkplaceCost
	if err := db.Where("workplace_id = ?", id).Order("date desc").Find(&costs).Error; err != nil {
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

func createWorkplaceCostHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedWorkplace(currentManager(c), id); err != nil {
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
	cost := models.WorkplaceCost{
		WorkplaceID: id,
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

func listWorkplaceRevenuesHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if _, err := ownedWorkplace(currentManager(c), id); err != nil {
		respondLookupError(c, err)
		return
	}
	var revenues []models.WorkplaceRevenue
	if err := db.Where("workplace_id = ?", id).Order("date desc").Find(&revenues).Error; err != nil {
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
			"employee_id": revenues[i].EmployeeID,
		})
	}
	c.JSON(http.StatusOK, out)
}

func createWorkplaceRevenueHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	managerID := currentManager(c)
	if _, err := ownedWorkplace(managerID, id); err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		Description string          `json:"description" binding:"required"`
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Date        string          `json:"date" binding:"required"`
		EmployeeID  *uint           `json:"employee_id"`
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
	revenue := models.WorkplaceRevenue{
		WorkplaceID: id,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}
	if req.EmployeeID != nil {
		employee, err := ownedEmployee(managerID, *req.EmployeeID)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		revenue.EmployeeID = &employee.ID
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
		"employee_id": revenue.EmployeeID,
	})
}
