package dto

import (
	"time"

	"catalog-service/internal/domain/entity"
)

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type ListAuditLogsQuery struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

type AuditLogListResponse struct {
	Logs       []AuditLogResponse
	Page       int
	Limit      int
	TotalItems int64
}
