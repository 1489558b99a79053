package main

import (
	"net/http"
	"sort"
	"time"

	"kadra/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// listRevenuesHandler merges workplace and employee revenues owned by the
// caller, newest first.
func listRevenuesHandler(c *gin.Context) {
	managerID := currentManager(c)

	var workplaceRevenues []models.WorkplaceRevenue
	if err := db.Preload("Workplace").
		Joins("JOIN workplaces ON workplaces.id = workplace_revenues.workplace_id").
		Where("workplaces.manager_id = ?", managerID).
		Find(&workplaceRevenues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var employeeRevenues []models.EmployeeRevenue
	if err := db.Preload("Employee").
		Joins("JOIN employees ON employees.id = employee_revenues.employee_id").
		Where("employees.manager_id = ?", managerID).
		Find(&employeeRevenues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	revenues := make([]gin.H, 0, len(workplaceRevenues)+len(employeeRevenues))
	for i := range workplaceRevenues {
		wr := &workplaceRevenues[i]
		revenues = append(revenues, gin.H{
			"id":             wr.ID,
			"type":           "workplace",
			"workplace_id":   wr.WorkplaceID,
			"workplace_name": wr.Workplace.Name,
			"employee_id":    wr.EmployeeID,
			"description":    wr.Description,
			"amount":         wr.Amount,
			"date":           wr.Date.Format("2006-01-02"),
			"created_at":     wr.CreatedAt,
		})
	}
	for i := range employeeRevenues {
		er := &employeeRevenues[i]
		revenues = append(revenues, gin.H{
			"id":            er.ID,
			"type":          "employee",
			"employee_id":   er.EmployeeID,
			"employee_name": er.Employee.FullName(),
			"description":   er.Description,
			"amount":        er.Amount,
			"date":          er.Date.Format("2006-01-02"),
			"created_at":    er.CreatedAt,
		})
	}
	sort.Slice(revenues, func(i, j int) bool {
		return revenues[i]["date"].(string) > revenues[j]["date"].(string)
	})
	c.JSON(http.StatusOK, revenues)
}

func createRevenueHandler(c *gin.Context) {
	managerID := currentManager(c)
	var req struct {
		Type        string          `json:"type" binding:"required"`
		WorkplaceID uint            `json:"workplace_id"`
		EmployeeID  uint            `json:"employee_id"`
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

	switch req.Type {
	case "workplace":
		if _, err := ownedWorkplace(managerID, req.WorkplaceID); err != nil {
			respondLookupError(c, err)
			return
		}
		revenue := models.WorkplaceRevenue{
			WorkplaceID: req.WorkplaceID,
			Description: req.Description,
			Amount:      req.Amount,
			Date:        date,
		}
		// Optional attribution to the employee who generated the revenue.
		if req.EmployeeID != 0 {
			employee, err := ownedEmployee(managerID, req.EmployeeID)
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
			"type":        "workplace",
			"description": revenue.Description,
			"amount":      revenue.Amount,
			"date":        revenue.Date.Format("2006-01-02"),
			"created_at":  revenue.CreatedAt,
		})
	case "employee":
		if _, err := ownedEmployee(managerID, req.EmployeeID); err != nil {
			respondLookupError(c, err)
			return
		}
		revenue := models.EmployeeRevenue{
			EmployeeID:  req.EmployeeID,
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
			"type":        "employee",
			"description": revenue.Description,
			"amount":      revenue.Amount,
			"date":        revenue.Date.Format("2006-01-02"),
			"created_at":  revenue.CreatedAt,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revenue type"})
	}
}

func updateRevenueHandler(c *gin.Context) {
	managerID := currentManager(c)
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	var req entryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var date *time.Time
	if req.Date != nil {
		d, err := parseISODate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = &d
	}

	switch c.Param("type") {
	case "workplace":
		revenue, err := ownedWorkplaceRevenue(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if req.Description != nil {
			revenue.Description = *req.Description
		}
		if req.Amount != nil {
			revenue.Amount = *req.Amount
		}
		if date != nil {
			revenue.Date = *date
		}
		if err := db.Save(revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          revenue.ID,
			"type":        "workplace",
			"description": revenue.Description,
			"amount":      revenue.Amount,
			"date":        revenue.Date.Format("2006-01-02"),
			"updated_at":  revenue.UpdatedAt,
		})
	case "employee":
		revenue, err := ownedEmployeeRevenue(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if req.Description != nil {
			revenue.Description = *req.Description
		}
		if req.Amount != nil {
			revenue.Amount = *req.Amount
		}
		if date != nil {
			revenue.Date = *date
		}
		if err := db.Save(revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          revenue.ID,
			"type":        "employee",
			"description": revenue.Description,
			"amount":      revenue.Amount,
			"date":        revenue.Date.Format("2006-01-02"),
			"updated_at":  revenue.UpdatedAt,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revenue type"})
	}
}

func deleteRevenueHandler(c *gin.Context) {
	managerID := currentManager(c)
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	switch c.Param("type") {
	case "workplace":
		revenue, err := ownedWorkplaceRevenue(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if err := db.Delete(revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
	case "employee":
		revenue, err := ownedEmployeeRevenue(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if err := db.Delete(revenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revenue type"})
		return
	}
	c.Status(http.StatusNoContent)
}
