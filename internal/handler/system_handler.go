package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studentdesk/studentdesk-backend/internal/response"
)

// SystemHandler serves the health check and the root API index.
type SystemHandler struct {
	environment string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(environment string) *SystemHandler {
	return &SystemHandler{environment: environment}
}

// HealthResponse is the health-check payload.
type HealthResponse struct {
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// Health godoc
// GET /api/health
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "Server is running!", HealthResponse{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
	})
}

// Index godoc
// GET /
// Describes the API surface for anyone poking at the root.
func (h *SystemHandler) Index(c *gin.Context) {
	response.Success(c, http.StatusOK, "Student Management System API", gin.H{
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth": gin.H{
				"signup": "POST /api/auth/signup",
				"login":  "POST /api/auth/login",
				"me":     "GET /api/auth/me",
			},
			"students": gin.H{
				"create":  "POST /api/students (admin only)",
				"getAll":  "GET /api/students",
				"getById": "GET /api/students/:id",
				"update":  "PUT /api/students/:id (admin only)",
				"delete":  "DELETE /api/students/:id (admin only)",
			},
			"users": gin.H{
				"getById": "GET /api/students/user/:id (admin only)",
				"update":  "PUT /api/students/user/:id (admin only)",
				"delete":  "DELETE /api/students/user/:id (admin only)",
			},
			"health": "GET /api/health",
		},
	})
}
