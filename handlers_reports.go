package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"kadra/models"
	"kadra/pkg/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type statsRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Type      string `json:"type"`
}

func (r statsRequest) kind() report.Kind {
	if r.Type == "" {
		return report.KindAll
	}
	return report.Kind(r.Type)
}

func (r statsRequest) window() (time.Time, time.Time, error) {
	start, err := parseISODate(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseISODate(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date before start_date")
	}
	return start, end, nil
}

// collectEmployeeRows computes one report row per owned employee over the
// window. A bounded number of scalar queries per employee, no row sets.
func collectEmployeeRows(managerID uint, start, end time.Time) ([]report.EmployeeRow, []float64, error) {
	var employees []models.Employee
	if err := db.Where("manager_id = ?", managerID).Order("id").Find(&employees).Error; err != nil {
		return nil, nil, err
	}
	rows := make([]report.EmployeeRow, 0, len(employees))
	hours := make([]float64, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		costs, err := employeeCostSum(e.ID, start, end)
		if err != nil {
			return nil, nil, err
		}
		workplaceRev, err := employeeWorkplaceRevenueSum(e.ID, start, end)
		if err != nil {
			return nil, nil, err
		}
		directRev, err := employeeDirectRevenueSum(e.ID, start, end)
		if err != nil {
			return nil, nil, err
		}
		names, err := employeeWorkplaceNames(e.ID, start, end)
		if err != nil {
			return nil, nil, err
		}
		scheduled, err := employeeScheduleHours(e.ID, start, end)
		if err != nil {
			return nil, nil, err
		}
		total := workplaceRev.Add(directRev)
		rows = append(rows, report.EmployeeRow{
			Name:             e.FullName(),
			Workplaces:       names,
			Costs:            costs,
			WorkplaceRevenue: workplaceRev,
			DirectRevenue:    directRev,
			TotalRevenue:     total,
			Profit:           total.Sub(costs),
		})
		hours = append(hours, scheduled)
	}
	return rows, hours, nil
}

// collectWorkplaceRows computes one report row per owned workplace; revenue
// includes assignment-attributed employee revenue.
func collectWorkplaceRows(managerID uint, start, end time.Time) ([]report.WorkplaceRow, error) {
	var workplaces []models.Workplace
	if err := db.Where("manager_id = ?", managerID).Order("id").Find(&workplaces).Error; err != nil {
		return nil, err
	}
	rows := make([]report.WorkplaceRow, 0, len(workplaces))
	for i := range workplaces {
		w := &workplaces[i]
		costs, err := workplaceCostSum(w.ID, start, end)
		if err != nil {
			return nil, err
		}
		revenues, err := workplaceTotalRevenueSum(w.ID, start, end)
		if err != nil {
			return nil, err
		}
		count, err := workplaceActiveEmployeeCount(w.ID, start, end)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.WorkplaceRow{
			Name:          w.Name,
			EmployeeCount: count,
			Costs:         costs,
			Revenues:      revenues,
			Profit:        revenues.Sub(costs),
		})
	}
	return rows, nil
}

func buildStats(managerID uint, kind report.Kind, start, end time.Time) (gin.H, error) {
	employeeStats := make([]gin.H, 0)
	if kind.IncludesEmployees() {
		rows, hours, err := collectEmployeeRows(managerID, start, end)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			employeeStats = append(employeeStats, gin.H{
				"name":           row.Name,
				"total_costs":    row.Costs,
				"total_revenues": row.TotalRevenue,
				"total_profit":   row.Profit,
				"total_hours":    hours[i],
			})
		}
	}
	workplaceStats := make([]gin.H, 0)
	if kind.IncludesWorkplaces() {
		rows, err := collectWorkplaceRows(managerID, start, end)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			workplaceStats = append(workplaceStats, gin.H{
				"name":           row.Name,
				"total_costs":    row.Costs,
				"total_revenues": row.Revenues,
				"total_profit":   row.Profit,
			})
		}
	}
	return gin.H{"employees": employeeStats, "workplaces": workplaceStats}, nil
}

func statsHandler(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind := req.kind()
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}
	start, end, err := req.window()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stats, err := buildStats(currentManager(c), kind, start, end)
	if err != nil {
		logger.Error("stats aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// monthlyStatsHandler serves the same aggregates over one calendar month.
func monthlyStatsHandler(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	kind := report.KindAll
	if t := c.Query("type"); t != "" {
		kind = report.Kind(t)
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
			return
		}
	}
	start, end := monthWindow(year, time.Month(monthNum))
	stats, err := buildStats(currentManager(c), kind, start, end)
	if err != nil {
		logger.Error("monthly aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	stats["year"] = year
	stats["month"] = monthNum
	c.JSON(http.StatusOK, stats)
}

// excelReportHandler renders the aggregates into a downloadable workbook.
// The temp artifact is removed whether generation succeeds or fails.
func excelReportHandler(c *gin.Context) {
	var req statsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	kind := req.kind()
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}
	start, end, err := req.window()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
		return
	}
	managerID := currentManager(c)

	var workplaceRows []report.WorkplaceRow
	var employeeRows []report.EmployeeRow
	if kind.IncludesWorkplaces() {
		if workplaceRows, err = collectWorkplaceRows(managerID, start, end); err != nil {
			logger.Error("report aggregation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
			return
		}
	}
	if kind.IncludesEmployees() {
		if employeeRows, _, err = collectEmployeeRows(managerID, start, end); err != nil {
			logger.Error("report aggregation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
			return
		}
	}

	f, err := report.Build(kind, workplaceRows, employeeRows)
	if err != nil {
		logger.Error("workbook build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}
	defer f.Close()

	tmp, err := os.CreateTemp("", "raport-*.xlsx")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := f.SaveAs(tmpPath); err != nil {
		logger.Error("workbook save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}
	filename := fmt.Sprintf("raport_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.FileAttachment(tmpPath, filename)
}
