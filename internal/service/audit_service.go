package service

import (
	"context"

	"catalog-service/internal/domain/entity"
	"catalog-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records who changed what. Recording is best-effort: a failure
// is logged and never propagated to the write that triggered it.
type AuditService interface {
	LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{})
	LogEvent(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) {
	s.record(ctx, userID, action, changeMetadata(entityName, entityID, nil, newValue))
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.record(ctx, userID, action, changeMetadata(entityName, entityID, oldValue, newValue))
}

func (s *auditService) LogDelete(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) {
	s.record(ctx, userID, action, changeMetadata(entityName, entityID, oldValue, nil))
}

func (s *auditService) LogEvent(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	s.record(ctx, userID, action, metadata)
}

func (s *auditService) record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.WithField("action", action).Warnf("Failed to create audit log: %+v", err)
	}
}

func changeMetadata(entityName, entityID string, oldValue, newValue interface{}) entity.JSON {
	return entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}
}
