package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondLookupError maps a scoped-lookup failure to the wire. Rows outside
// the caller's ownership graph and rows that do not exist produce the same
// 404 body, so existence cannot be probed.
func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
}
