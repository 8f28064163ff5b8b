package repository

import (
	"time"

	"github.com/jhoicas/fresco-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para Alert (DIP).
type AlertRepository interface {
	Create(alert *entity.Alert) error
	// ExistsForDay indica si ya hay una alerta del mismo lote + tipo creada el
	// mismo día calendario que `day` (deduplicación diaria).
	ExistsForDay(batchID, alertType string, day time.Time) (bool, error)
	List(onlyUnread bool, limit, offset int) ([]*entity.Alert, error)
	MarkRead(id string) error
	MarkAllRead() error
	CountUnread() (int, error)
}
