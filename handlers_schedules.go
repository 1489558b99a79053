package main

import (
	"fmt"
	"net/http"

	"kadra/models"

	"github.com/gin-gonic/gin"
)

// maxDailyHours caps an employee's scheduled hours per calendar day.
const maxDailyHours = 24

// checkDailyHours validates a submitted hour count against what the employee
// already has scheduled on that day. The read-check-write sequence is not
// serialized against concurrent writers, so two submissions validated at the
// same time can jointly exceed the cap; single-writer usage never can.
func checkDailyHours(existing, hours float64) error {
	if hours <= 0 || hours > maxDailyHours {
		return fmt.Errorf("invalid number of hours")
	}
	if existing+hours > maxDailyHours {
		return fmt.Errorf("total scheduled hours for the day cannot exceed %d (currently scheduled: %gh)", maxDailyHours, existing)
	}
	return nil
}

func scheduleJSON(s *models.Schedule, workplaceName, employeeName string) gin.H {
	return gin.H{
		"id":             s.ID,
		"workplace_id":   s.WorkplaceID,
		"workplace_name": workplaceName,
		"employee_id":    s.EmployeeID,
		"employee_name":  employeeName,
		"date":           s.Date.Format("2006-01-02"),
		"hours":          s.Hours,
		"created_at":     s.CreatedAt,
	}
}

func listSchedulesHandler(c *gin.Context) {
	var schedules []models.Schedule
	if err := db.Preload("Workplace").Preload("Employee").
		Joins("JOIN workplaces ON workplaces.id = schedules.workplace_id").
		Where("workplaces.manager_id = ?", currentManager(c)).
		Order("schedules.date").
		Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(schedules))
	for i := range schedules {
		s := &schedules[i]
		out = append(out, scheduleJSON(s, s.Workplace.Name, s.Employee.FullName()))
	}
	c.JSON(http.StatusOK, out)
}

func createScheduleHandler(c *gin.Context) {
	managerID := currentManager(c)
	var req struct {
		WorkplaceID uint   `json:"workplace_id" binding:"required"`
		EmployeeID  uint   `json:"employee_id" binding:"required"`
		Date        string `json:"date" binding:"required"`
		// No binding tag: zero hours must reach checkDailyHours so the
		// domain message is returned, not a generic "required" error.
		Hours float64 `json:"hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workplace, err := ownedWorkplace(managerID, req.WorkplaceID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	employee, err := ownedEmployee(managerID, req.EmployeeID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	date, err := parseISODate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := scheduleDayHours(employee.ID, date, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := checkDailyHours(existing, req.Hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	schedule := models.Schedule{
		WorkplaceID: workplace.ID,
		EmployeeID:  employee.ID,
		Date:        date,
		Hours:       req.Hours,
	}
	if err := db.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, scheduleJSON(&schedule, workplace.Name, employee.FullName()))
}

// updateScheduleHandler replaces all schedule fields; the day total excludes
// the row being updated.
func updateScheduleHandler(c *gin.Context) {
	managerID := currentManager(c)
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	schedule, err := ownedSchedule(managerID, id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		WorkplaceID uint    `json:"workplace_id" binding:"required"`
		EmployeeID  uint    `json:"employee_id" binding:"required"`
		Date        string  `json:"date" binding:"required"`
		Hours       float64 `json:"hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workplace, err := ownedWorkplace(managerID, req.WorkplaceID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	employee, err := ownedEmployee(managerID, req.EmployeeID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	date, err := parseISODate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := scheduleDayHours(employee.ID, date, schedule.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if err := checkDailyHours(existing, req.Hours); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	schedule.WorkplaceID = workplace.ID
	schedule.EmployeeID = employee.ID
	schedule.Date = date
	schedule.Hours = req.Hours
	if err := db.Save(schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, scheduleJSON(schedule, workplace.Name, employee.FullName()))
}

func deleteScheduleHandler(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondLookupError(c, err)
		return
	}
	schedule, err := ownedSchedule(currentManager(c), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	if err := db.Delete(schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
