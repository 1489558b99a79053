package main

import (
	"fmt"
	"time"

	"kadra/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregation engine: scalar sums computed database-side. Full row sets are
// never materialized when only a total is needed.

// dateOnly drops the time-of-day component; all aggregation windows operate
// at calendar-day granularity.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// monthWindow returns the inclusive first and last day of the given month,
// so a monthly sum is exactly the range sum over this window.
func monthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// parseISODate accepts a plain date or a full ISO-8601 timestamp and returns
// the calendar day.
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected ISO-8601", s)
}

func sumAmount(q *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(" + column + "), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func sumHours(q *gorm.DB) (float64, error) {
	var total float64
	row := q.Select("COALESCE(SUM(hours), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func employeeCostSum(employeeID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.EmployeeCost{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, dateOnly(start), dateOnly(end)), "amount")
}

// employeeDirectRevenueSum covers revenue booked directly on the employee.
func employeeDirectRevenueSum(employeeID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.EmployeeRevenue{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, dateOnly(start), dateOnly(end)), "amount")
}

// employeeWorkplaceRevenueSum covers workplace revenue credited to the
// employee via the entry's employee reference.
func employeeWorkplaceRevenueSum(employeeID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.WorkplaceRevenue{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, dateOnly(start), dateOnly(end)), "amount")
}

func employeeScheduleHours(employeeID uint, start, end time.Time) (float64, error) {
	return sumHours(db.Model(&models.Schedule{}).
		Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, dateOnly(start), dateOnly(end)))
}

// scheduleDayHours sums an employee's scheduled hours on one day, optionally
// excluding the row under update.
func scheduleDayHours(employeeID uint, day time.Time, excludeID uint) (float64, error) {
	q := db.Model(&models.Schedule{}).
		Where("employee_id = ? AND date = ?", employeeID, dateOnly(day))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return sumHours(q)
}

func workplaceCostSum(workplaceID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.WorkplaceCost{}).
		Where("workplace_id = ? AND date BETWEEN ? AND ?", workplaceID, dateOnly(start), dateOnly(end)), "amount")
}

// workplaceRevenueSum covers revenue booked on the workplace itself.
func workplaceRevenueSum(workplaceID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.WorkplaceRevenue{}).
		Where("workplace_id = ? AND date BETWEEN ? AND ?", workplaceID, dateOnly(start), dateOnly(end)), "amount")
}

// workplaceAttributedRevenueSum credits an employee's direct revenue to the
// workplace when an assignment to it covers the entry date. EXISTS keeps an
// entry counted once even if several assignments overlap.
func workplaceAttributedRevenueSum(workplaceID uint, start, end time.Time) (decimal.Decimal, error) {
	return sumAmount(db.Model(&models.EmployeeRevenue{}).
		Where("date BETWEEN ? AND ?", dateOnly(start), dateOnly(end)).
		Where(`EXISTS (
			SELECT 1 FROM workplace_assignments a
			WHERE a.employee_id = employee_revenues.employee_id
			  AND a.workplace_id = ?
			  AND a.start_date <= employee_revenues.date
			  AND (a.end_date IS NULL OR a.end_date >= employee_revenues.date))`, workplaceID), "amount")
}

// workplaceTotalRevenueSum is the workplace's reportable revenue: its own
// entries plus assignment-attributed employee revenue.
func workplaceTotalRevenueSum(workplaceID uint, start, end time.Time) (decimal.Decimal, error) {
	direct, err := workplaceRevenueSum(workplaceID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	attributed, err := workplaceAttributedRevenueSum(workplaceID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return direct.Add(attributed), nil
}

// workplaceActiveEmployeeCount counts distinct employees with revenue
// activity at the workplace within the window.
func workplaceActiveEmployeeCount(workplaceID uint, start, end time.Time) (int64, error) {
	var n int64
	err := db.Model(&models.WorkplaceRevenue{}).
		Where("workplace_id = ? AND employee_id IS NOT NULL AND date BETWEEN ? AND ?",
			workplaceID, dateOnly(start), dateOnly(end)).
		Distinct("employee_id").
		Count(&n).Error
	return n, err
}

// employeeWorkplaceNames lists the distinct workplaces where the employee had
// revenue activity within the window, for report display.
func employeeWorkplaceNames(employeeID uint, start, end time.Time) ([]string, error) {
	var names []string
	err := db.Model(&models.Workplace{}).
		Joins("JOIN workplace_revenues r ON r.workplace_id = workplaces.id").
		Where("r.employee_id = ? AND r.date BETWEEN ? AND ?", employeeID, dateOnly(start), dateOnly(end)).
		Distinct("workplaces.name").
		Order("workplaces.name").
		Pluck("workplaces.name", &names).Error
	return names, err
}
