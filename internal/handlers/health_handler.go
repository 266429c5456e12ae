package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is the served API version, reported by the health probes.
const Version = "4.1.1"

type HealthHandler struct {
	db      *sql.DB
	env     string
	started time.Time
}

func NewHealthHandler(db *sql.DB, env string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		env:     env,
		started: time.Now(),
	}
}

// Check is the liveness probe.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"message":     "Fitness coaching API is running",
		"version":     Version,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.env,
	})
}

// Database is the DB connectivity probe.
func (h *HealthHandler) Database(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "ERROR",
			"message": "Database connection is unhealthy",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Database connection is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root answers the bare "/" probe used by deployment platforms.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Fitness coaching API server running",
		"version":   Version,
		"status":    "operational",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
