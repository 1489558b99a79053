package main

import (
	"strconv"

	"kadra/models"

	"gorm.io/gorm"
)

// Ownership filter: one scoped lookup per entity type. Child rows (costs,
// revenues, schedules, assignments) resolve ownership by joining through the
// parent employee or workplace. A row outside the manager's graph surfaces as
// gorm.ErrRecordNotFound, indistinguishable from a row that does not exist.

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return uint(id), nil
}

func ownedEmployee(managerID uint, id uint) (*models.Employee, error) {
	var e models.Employee
	err := db.Where("id = ? AND manager_id = ?", id, managerID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func ownedWorkplace(managerID uint, id uint) (*models.Workplace, error) {
	var w models.Workplace
	err := db.Where("id = ? AND manager_id = ?", id, managerID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func ownedEmployeeCost(managerID uint, id uint) (*models.EmployeeCost, error) {
	var c models.EmployeeCost
	err := db.Joins("JOIN employees ON employees.id = employee_costs.employee_id").
		Where("employee_costs.id = ? AND employees.manager_id = ?", id, managerID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func ownedWorkplaceCost(managerID uint, id uint) (*models.WorkplaceCost, error) {
	var c models.WorkplaceCost
	err := db.Joins("JOIN workplaces ON workplaces.id = workplace_costs.workplace_id").
		Where("workplace_costs.id = ? AND workplaces.manager_id = ?", id, managerID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func ownedEmployeeRevenue(managerID uint, id uint) (*models.EmployeeRevenue, error) {
	var r models.EmployeeRevenue
	err := db.Joins("JOIN employees ON employees.id = employee_revenues.employee_id").
		Where("employee_revenues.id = ? AND employees.manager_id = ?", id, managerID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func ownedWorkplaceRevenue(managerID uint, id uint) (*models.WorkplaceRevenue, error) {
	var r models.WorkplaceRevenue
	err := db.Joins("JOIN workplaces ON workplaces.id = workplace_revenues.workplace_id").
		Where("workplace_revenues.id = ? AND workplaces.manager_id = ?", id, managerID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func ownedSchedule(managerID uint, id uint) (*models.Schedule, error) {
	var s models.Schedule
	err := db.Joins("JOIN workplaces ON workplaces.id = schedules.workplace_id").
		Where("schedules.id = ? AND workplaces.manager_id = ?", id, managerID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
