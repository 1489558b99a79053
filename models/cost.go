package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeCost is a dated cost entry booked against an employee.
type EmployeeCost struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EmployeeID  uint            `gorm:"index;not null"`
	Employee    Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Description string          `gorm:"size:200;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
}

// WorkplaceCost is a dated cost entry booked against a workplace.
type WorkplaceCost struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	WorkplaceID uint            `gorm:"index;not null"`
	Workplace   Workplace       `gorm:"foreignKey:WorkplaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Description string          `gorm:"size:200;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
}
