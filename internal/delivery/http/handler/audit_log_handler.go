package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-service/internal/delivery/dto"
	"catalog-service/internal/usecase"
	"catalog-service/pkg/response"
	"catalog-service/pkg/validator"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// GetAuditLog handles getting a single audit entry
// @Summary Get audit log by ID
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit log ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /audit-logs/{id} [get]
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]
	auditLogID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log not found", map[string]string{"resource": "AuditLog", "id": rawID})
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs handles listing audit entries, newest first
// @Summary Get audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /audit-logs [get]
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	query, parseErrs := dto.ParseListAuditLogsQuery(r.URL.Query())
	if len(parseErrs) > 0 {
		response.ValidationError(w, parseErrs)
		return
	}
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Audit logs retrieved successfully",
		result.Logs, response.NewPagination(result.Page, result.Limit, result.TotalItems))
}
