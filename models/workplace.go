package models

import "time"

// Workplace belongs to exactly one manager.
type Workplace struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ManagerID   uint   `gorm:"index;not null"`
	Manager     User   `gorm:"foreignKey:ManagerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name        string `gorm:"size:100;not null"`
	Address     string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	Assignments []WorkplaceAssignment `gorm:"foreignKey:WorkplaceID"`
	Costs       []WorkplaceCost       `gorm:"foreignKey:WorkplaceID"`
	Revenues    []WorkplaceRevenue    `gorm:"foreignKey:WorkplaceID"`
}
