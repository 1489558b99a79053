package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkplaceRevenue is a dated revenue entry booked against a workplace.
// EmployeeID, when set, records which employee generated it so reports can
// decompose an employee's revenue into workplace-attributed vs. direct.
type WorkplaceRevenue struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	WorkplaceID uint            `gorm:"index;not null"`
	Workplace   Workplace       `gorm:"foreignKey:WorkplaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	EmployeeID  *uint           `gorm:"index"`
	Employee    *Employee       `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Description string          `gorm:"size:200;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
}

// EmployeeRevenue is a dated revenue entry booked directly against an
// employee, independent of any workplace.
type EmployeeRevenue struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	EmployeeID  uint            `gorm:"index;not null"`
	Employee    Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Description string          `gorm:"size:200;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Date        time.Time       `gorm:"type:date;not null;index"`
}
