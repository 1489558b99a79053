package models

import "time"

// Schedule assigns an employee a number of hours at a workplace on one day.
// Invariant: for a fixed (employee, date) the hours across all rows must stay
// within 24; the write path enforces it before persisting.
type Schedule struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	WorkplaceID uint      `gorm:"index;not null"`
	Workplace   Workplace `gorm:"foreignKey:WorkplaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	EmployeeID  uint      `gorm:"not null;index:idx_schedule_employee_day"`
	Employee    Employee  `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Date        time.Time `gorm:"type:date;not null;index:idx_schedule_employee_day"`
	Hours       float64   `gorm:"not null"`
}
