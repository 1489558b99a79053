package main

import (
	"net/http"
	"strings"

	"kadra/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func getProfileHandler(c *gin.Context) {
	var user models.User
	if err := db.First(&user, currentManager(c)).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(&user))
}

func updateProfileHandler(c *gin.Context) {
	var user models.User
	if err := db.First(&user, currentManager(c)).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
			return
		}
		if email != user.Email {
			var existing models.User
			if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if err := db.Save(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, userJSON(&user))
}

func changePasswordHandler(c *gin.Context) {
	var user models.User
	if err := db.First(&user, currentManager(c)).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current password is incorrect"})
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	user.PasswordHash = hashed
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}
