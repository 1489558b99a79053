package main

import (
	"net/http"
	"sort"
	"time"

	"kadra/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// listCostsHandler merges workplace and employee costs owned by the caller,
// newest first.
func listCostsHandler(c *gin.Context) {
	managerID := currentManager(c)

	var workplaceCosts []models.WorkplaceCost
	if err := db.Preload("Workplace").
		Joins("JOIN workplaces ON workplaces.id = workplace_costs.workplace_id").
		Where("workplaces.manager_id = ?", managerID).
		Find(&workplaceCosts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var employeeCosts []models.EmployeeCost
	if err := db.Preload("Employee").
		Joins("JOIN employees ON employees.id = employee_costs.employee_id").
		Where("employees.manager_id = ?", managerID).
		Find(&employeeCosts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	costs := make([]gin.H, 0, len(workplaceCosts)+len(employeeCosts))
	for i := range workplaceCosts {
		wc := &workplaceCosts[i]
		costs = append(costs, gin.H{
			"id":             wc.ID,
			"type":           "workplace",
			"workplace_id":   wc.WorkplaceID,
			"workplace_name": wc.Workplace.Name,
			"description":    wc.Description,
			"amount":         wc.Amount,
			"date":           wc.Date.Format("2006-01-02"),
			"created_at":     wc.CreatedAt,
		})
	}
	for i := range employeeCosts {
		ec := &employeeCosts[i]
		costs = append(costs, gin.H{
			"id":            ec.ID,
			"type":          "employee",
			"employee_id":   ec.EmployeeID,
			"employee_name": ec.Employee.FullName(),
			"description":   ec.Description,
			"amount":        ec.Amount,
			"date":          ec.Date.Format("2006-01-02"),
			"created_at":    ec.CreatedAt,
		})
	}
	sort.Slice(costs, func(i, j int) bool {
		return costs[i]["date"].(string) > costs[j]["date"].(string)
	})
	c.JSON(http.StatusOK, costs)
}

func createCostHandler(c *gin.Context) {
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
		cost := models.WorkplaceCost{
			WorkplaceID: req.WorkplaceID,
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
			"type":        "workplace",
			"description": cost.Description,
			"amount":      cost.Amount,
			"date":        cost.Date.Format("2006-01-02"),
			"created_at":  cost.CreatedAt,
		})
	case "employee":
		if _, err := ownedEmployee(managerID, req.EmployeeID); err != nil {
			respondLookupError(c, err)
			return
		}
		cost := models.EmployeeCost{
			EmployeeID:  req.EmployeeID,
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
			"type":        "employee",
			"description": cost.Description,
			"amount":      cost.Amount,
			"date":        cost.Date.Format("2006-01-02"),
			"created_at":  cost.CreatedAt,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost type"})
	}
}

type entryUpdate struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
}

func updateCostHandler(c *gin.Context) {
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
		cost, err := ownedWorkplaceCost(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if req.Description != nil {
			cost.Description = *req.Description
		}
		if req.Amount != nil {
			cost.Amount = *req.Amount
		}
		if date != nil {
			cost.Date = *date
		}
		if err := db.Save(cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          cost.ID,
			"type":        "workplace",
			"description": cost.Description,
			"amount":      cost.Amount,
			"date":        cost.Date.Format("2006-01-02"),
			"updated_at":  cost.UpdatedAt,
		})
	case "employee":
		cost, err := ownedEmployeeCost(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if req.Description != nil {
			cost.Description = *req.Description
		}
		if req.Amount != nil {
			cost.Amount = *req.Amount
		}
		if date != nil {
			cost.Date = *date
		}
		if err := db.Save(cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":          cost.ID,
			"type":        "employee",
			"description": cost.Description,
			"amount":      cost.Amount,
			"date":        cost.Date.Format("2006-01-02"),
			"updated_at":  cost.UpdatedAt,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost type"})
	}
}

func deleteCostHandler(c *gin.Context) {
	managerID := currentManager(c)
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	switch c.Param("type") {
	case "workplace":
		cost, err := ownedWorkplaceCost(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if err := db.Delete(cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
	case "employee":
		cost, err := ownedEmployeeCost(managerID, id)
		if err != nil {
			respondLookupError(c, err)
			return
		}
		if err := db.Delete(cost).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost type"})
		return
	}
	c.Status(http.StatusNoContent)
}
