package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// User is a manager account. Every employee, workplace and everything hanging
// off them is scoped to exactly one manager.
type User struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string `gorm:"size:120;not null;uniqueIndex"`
	PasswordHash []byte `gorm:"not null"`
	FirstName    string `gorm:"size:50;not null"`
	LastName     string `gorm:"size:50;not null"`
	Role         string `gorm:"size:20;not null;default:user"`

	Employees  []Employee  `gorm:"foreignKey:ManagerID"`
	Workplaces []Workplace `gorm:"foreignKey:ManagerID"`
}
