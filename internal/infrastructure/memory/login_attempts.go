package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/fresco-api/internal/application/auth"
)

var _ auth.LoginAttemptStore = (*LoginAttemptStore)(nil)

// LoginAttemptStore implementación en memoria del puerto auth.LoginAttemptStore.
// Un mapa email -> contador con ventana de bloqueo. Suficiente para un solo
// proceso; con varias réplicas conviene respaldarlo en un cache compartido.
type LoginAttemptStore struct {
	mu          sync.Mutex
	entries     map[string]*attemptEntry
	maxAttempts int
	lockout     time.Duration
}

type attemptEntry struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// NewLoginAttemptStore construye el store. maxAttempts fallos dentro de la
// ventana bloquean el identificador por lockout.
func NewLoginAttemptStore(maxAttempts int, lockout time.Duration) *LoginAttemptStore {
	return &LoginAttemptStore{
		entries:     make(map[string]*attemptEntry),
		maxAttempts: maxAttempts,
		lockout:     lockout,
	}
}

// IsLocked indica si el identificador está bloqueado en este instante.
func (s *LoginAttemptStore) IsLocked(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return false
	}
	if !e.lockedUntil.IsZero() && now.Before(e.lockedUntil) {
		return true
	}
	// Bloqueo vencido o contador viejo: limpiar para no crecer sin límite.
	if now.Sub(e.lastFailure) > s.lockout {
		delete(s.entries, key)
	}
	return false
}

// RegisterFailure suma un intento fallido; al llegar al límite fija lockedUntil.
func (s *LoginAttemptStore) RegisterFailure(key string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || now.Sub(e.lastFailure) > s.lockout {
		e = &attemptEntry{}
		s.entries[key] = e
	}
	e.failures++
	e.lastFailure = now
	if e.failures >= s.maxAttempts {
		e.lockedUntil = now.Add(s.lockout)
	}
}

// Reset limpia el contador tras un login exitoso.
func (s *LoginAttemptStore) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
