package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/studentdesk/studentdesk-backend/internal/middleware"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
	"github.com/studentdesk/studentdesk-backend/internal/validator"
)

// StudentHandler handles the student directory: manual record CRUD and the
// merged listing.
type StudentHandler struct {
	directory *service.DirectoryService
	log       zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(directory *service.DirectoryService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{directory: directory, log: log}
}

// CreateStudentRequest is the payload for creating a student record.
type CreateStudentRequest struct {
	Name  string    `json:"name" binding:"required,min=2,max=100"`
	Email string    `json:"email" binding:"required,email"`
	Age   model.Age `json:"age" binding:"required,min=1,max=100"`
	Class string    `json:"class" binding:"required,min=1,max=50"`
}

// Normalize trims surrounding whitespace so the length rules run against
// the value that will be stored.
func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Class = strings.TrimSpace(r.Class)
}

// UpdateStudentRequest is the sparse payload for updating a student record.
// Only provided fields are validated and applied.
type UpdateStudentRequest struct {
	Name  *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string    `json:"email" binding:"omitempty,email"`
	Age   *model.Age `json:"age" binding:"omitempty,min=1,max=100"`
	Class *string    `json:"class" binding:"omitempty,min=1,max=50"`
}

// Normalize trims every provided field. A value that is all whitespace
// trims to empty and fails the length rules instead of blanking the column.
func (r *UpdateStudentRequest) Normalize() {
	trimProvided(r.Name, r.Email, r.Class)
}

// trimProvided trims each non-nil string in place.
func trimProvided(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// ListStudentsResponse is the merged directory listing payload.
type ListStudentsResponse struct {
	Students  []model.MergedRecord `json:"students"`
	Count     int                  `json:"count"`
	Breakdown model.ListBreakdown  `json:"breakdown"`
}

// CreateStudent godoc
// POST /api/students (admin only)
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	var req CreateStudentRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.MsgValidationFailed, errs)
		return
	}

	rec := &model.StudentRecord{
		Name:  req.Name,
		Email: req.Email,
		Age:   int(req.Age),
		Class: req.Class,
	}

	created, err := h.directory.CreateRecord(c.Request.Context(), identity, rec)
	if err != nil {
		h.log.Error().Err(err).Msg("create student failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusCreated, "Student created successfully", created)
}

// ListStudents godoc
// GET /api/students
// Merged directory view: manual records (ownership-scoped for non-admins)
// plus registration-sourced student accounts.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	students, breakdown, err := h.directory.ListRecords(c.Request.Context(), identity)
	if err != nil {
		h.log.Error().Err(err).Msg("list students failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "Students retrieved successfully", ListStudentsResponse{
		Students:  students,
		Count:     len(students),
		Breakdown: breakdown,
	})
}

// GetStudent godoc
// GET /api/students/:id
// Non-admin callers only resolve records they created; the not-found and
// not-yours cases share one response.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.MsgAuthRequired)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	rec, err := h.directory.GetRecord(c.Request.Context(), identity, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Student not found or access denied")
			return
		}
		h.log.Error().Err(err).Msg("get student failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "Student retrieved successfully", rec)
}

// UpdateStudent godoc
// PUT /api/students/:id (admin only)
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	var req UpdateStudentRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.MsgValidationFailed, errs)
		return
	}

	upd := model.StudentRecordUpdate{
		Name:  req.Name,
		Email: req.Email,
		Class: req.Class,
	}
	if req.Age != nil {
		age := int(*req.Age)
		upd.Age = &age
	}

	rec, err := h.directory.UpdateRecord(c.Request.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsProvided):
			response.Fail(c, http.StatusBadRequest, "No valid fields provided for update")
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "Student not found")
		default:
			h.log.Error().Err(err).Msg("update student failed")
			response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, "Student updated successfully", rec)
}

// DeleteStudent godoc
// DELETE /api/students/:id (admin only)
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid student ID format")
		return
	}

	summary, err := h.directory.DeleteRecord(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Student not found")
			return
		}
		h.log.Error().Err(err).Msg("delete student failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "Student deleted successfully", summary)
}
