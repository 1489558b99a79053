package main

import (
	"kadra/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(cfg Config) {
	if cfg.DBDSN == "" {
		logger.Fatal("DB_DSN is not set; a Postgres DSN is required")
	}
	var err error
	db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect postgres database", zap.Error(err))
	}
	if cfg.AutoMigrate {
		migrateDB()
	}
}

// migrateDB migrates models individually so a failure on one doesn't block
// others. Users go first so the manager FKs can be applied safely.
func migrateDB() {
	for _, m := range []struct {
		name  string
		model any
	}{
		{"users", &models.User{}},
		{"employees", &models.Employee{}},
		{"workplaces", &models.Workplace{}},
		{"workplace_assignments", &models.WorkplaceAssignment{}},
		{"employee_costs", &models.EmployeeCost{}},
		{"workplace_costs", &models.WorkplaceCost{}},
		{"employee_revenues", &models.EmployeeRevenue{}},
		{"workplace_revenues", &models.WorkplaceRevenue{}},
		{"schedules", &models.Schedule{}},
	} {
		if err := db.AutoMigrate(m.model); err != nil {
			logger.Warn("migration warning", zap.String("table", m.name), zap.Error(err))
		}
	}
}
