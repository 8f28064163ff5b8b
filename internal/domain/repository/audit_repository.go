package repository

import "github.com/jhoicas/fresco-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para AuditLogEntry.
// Solo inserción y lectura: el log de auditoría es inmutable.
type AuditRepository interface {
	Create(e *entity.AuditLogEntry) error
	ListByEntity(entityType, entityID string, limit int) ([]*entity.AuditLogEntry, error)
}
