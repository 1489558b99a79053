package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee belongs to exactly one manager.
type Employee struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ManagerID  uint            `gorm:"index;not null"`
	Manager    User            `gorm:"foreignKey:ManagerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FirstName  string          `gorm:"size:50;not null"`
	LastName   string          `gorm:"size:50;not null"`
	Email      string          `gorm:"size:120;not null;uniqueIndex"`
	Phone      string          `gorm:"size:20"`
	Position   string          `gorm:"size:50"`
	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Assignments []WorkplaceAssignment `gorm:"foreignKey:EmployeeID"`
	Costs       []EmployeeCost        `gorm:"foreignKey:EmployeeID"`
	Revenues    []EmployeeRevenue     `gorm:"foreignKey:EmployeeID"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
