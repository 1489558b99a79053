package models

import "time"

// WorkplaceAssignment places an employee at a workplace for a date range.
// A nil EndDate means the assignment is open-ended. Revenue an employee earns
// is credited to a workplace through an assignment covering the revenue date.
type WorkplaceAssignment struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EmployeeID  uint       `gorm:"index;not null"`
	Employee    Employee   `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	WorkplaceID uint       `gorm:"index;not null"`
	Workplace   Workplace  `gorm:"foreignKey:WorkplaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     *time.Time `gorm:"type:date"`
}
