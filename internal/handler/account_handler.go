package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"github.com/studentdesk/studentdesk-backend/internal/response"
	"github.com/studentdesk/studentdesk-backend/internal/service"
	"github.com/studentdesk/studentdesk-backend/internal/validator"
)

// AccountHandler handles admin operations on registered accounts, used to
// administer self-registered student identities directly.
type AccountHandler struct {
	directory *service.DirectoryService
	log       zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(directory *service.DirectoryService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{directory: directory, log: log}
}

// UpdateUserRequest is the sparse payload for updating a registered
// account. Password and role are not accepted on this path.
type UpdateUserRequest struct {
	Name  *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Email *string    `json:"email" binding:"omitempty,email"`
	Age   *model.Age `json:"age" binding:"omitempty,min=1,max=100"`
	Class *string    `json:"class" binding:"omitempty,min=1,max=50"`
}

// Normalize trims every provided field. A value that is all whitespace
// trims to empty and fails the length rules instead of blanking the column.
func (r *UpdateUserRequest) Normalize() {
	trimProvided(r.Name, r.Email, r.Class)
}

// GetUser godoc
// GET /api/students/user/:id (admin only)
func (h *AccountHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	account, err := h.directory.GetAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("get user failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved successfully", account)
}

// UpdateUser godoc
// PUT /api/students/user/:id (admin only)
func (h *AccountHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req UpdateUserRequest
	if errs := validator.Bind(c, &req); errs != nil {
		response.FailWithErrors(c, http.StatusBadRequest, response.MsgValidationFailed, errs)
		return
	}

	upd := model.AccountUpdate{
		Name:  req.Name,
		Email: req.Email,
		Class: req.Class,
	}
	if req.Age != nil {
		age := int(*req.Age)
		upd.Age = &age
	}

	account, err := h.directory.UpdateAccount(c.Request.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFieldsProvided):
			response.Fail(c, http.StatusBadRequest, "No valid fields provided for update")
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "User not found")
		default:
			h.log.Error().Err(err).Msg("update user failed")
			response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", account)
}

// DeleteUser godoc
// DELETE /api/students/user/:id (admin only)
// Records created by the deleted account survive with a null creator.
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	summary, err := h.directory.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("delete user failed")
		response.Fail(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", summary)
}
