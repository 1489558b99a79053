package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const managerIDKey = "managerID"

func setupRoutes(r *gin.Engine) {
	r.POST("/auth/register", registerHandler)
	r.POST("/auth/login", loginHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/auth/me", meHandler)

	authGroup.GET("/users/profile", getProfileHandler)
	authGroup.PUT("/users/profile", updateProfileHandler)
	authGroup.PUT("/users/profile/password", changePasswordHandler)

	authGroup.GET("/employees", listEmployeesHandler)
	authGroup.POST("/employees", createEmployeeHandler)
	authGroup.GET("/employees/:id", getEmployeeHandler)
	authGroup.PUT("/employees/:id", updateEmployeeHandler)
	authGroup.DELETE("/employees/:id", deleteEmployeeHandler)
	authGroup.GET("/employees/:id/costs", listEmployeeCostsHandler)
	authGroup.POST("/employees/:id/costs", createEmployeeCostHandler)
	authGroup.GET("/employees/:id/revenues", listEmployeeRevenuesHandler)
	authGroup.POST("/employees/:id/revenues", createEmployeeRevenueHandler)

	authGroup.GET("/workplaces", listWorkplacesHandler)
	authGroup.POST("/workplaces", createWorkplaceHandler)
	authGroup.GET("/workplaces/:id", getWorkplaceHandler)
	authGroup.PUT("/workplaces/:id", updateWorkplaceHandler)
	authGroup.DELETE("/workplaces/:id", deleteWorkplaceHandler)
	authGroup.GET("/workplaces/:id/employees", listWorkplaceEmployeesHandler)
	authGroup.POST("/workplaces/:id/employees", assignEmployeeHandler)
	authGroup.GET("/workplaces/:id/costs", listWorkplaceCostsHandler)
	authGroup.POST("/workplaces/:id/costs", createWorkplaceCostHandler)
	authGroup.GET("/workplaces/:id/revenues", listWorkplaceRevenuesHandler)
	authGroup.POST("/workplaces/:id/revenues", createWorkplaceRevenueHandler)

	authGroup.GET("/costs", listCostsHandler)
	authGroup.POST("/costs", createCostHandler)
	authGroup.PUT("/costs/:type/:id", updateCostHandler)
	authGroup.DELETE("/costs/:type/:id", deleteCostHandler)

	authGroup.GET("/revenues", listRevenuesHandler)
	authGroup.POST("/revenues", createRevenueHandler)
	authGroup.PUT("/revenues/:type/:id", updateRevenueHandler)
	authGroup.DELETE("/revenues/:type/:id", deleteRevenueHandler)

	authGroup.GET("/schedules", listSchedulesHandler)
	authGroup.POST("/schedules", createScheduleHandler)
	authGroup.PUT("/schedules/:id", updateScheduleHandler)
	authGroup.DELETE("/schedules/:id", deleteScheduleHandler)

	authGroup.POST("/reports/stats", statsHandler)
	authGroup.GET("/reports/monthly", monthlyStatsHandler)
	authGroup.POST("/reports/excel", excelReportHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set(managerIDKey, uint(id))
		c.Next()
	}
}

// currentManager returns the authenticated manager's id set by the middleware.
func currentManager(c *gin.Context) uint {
	v, _ := c.Get(managerIDKey)
	id, _ := v.(uint)
	return id
}
