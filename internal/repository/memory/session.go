package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/support-assistant/internal/domain"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session

	// guarded by SessionRepository.mu
	lastUsed uint64
}

// SessionRepository implements domain.SessionRepository in process memory.
// Each client handle owns one session; when maxSessions is reached the least
// recently used handle is dropped.
type SessionRepository struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*sessionEntry
	maxSessions int
	clock       uint64
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(maxSessions int) *SessionRepository {
	if maxSessions <= 0 {
		maxSessions = 1
	}
	return &SessionRepository{
		sessions:    make(map[uuid.UUID]*sessionEntry),
		maxSessions: maxSessions,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (uuid.UUID, error) {
	if session == nil {
		return uuid.Nil, fmt.Errorf("failed to create session: nil session")
	}

	handle := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.sessions) >= r.maxSessions {
		r.evictOldest()
	}

	r.clock++
	r.sessions[handle] = &sessionEntry{session: session, lastUsed: r.clock}
	return handle, nil
}

func (r *SessionRepository) Get(ctx context.Context, handle uuid.UUID) (*domain.Session, error) {
	e, err := r.touch(handle)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone(), nil
}

// Update runs fn with exclusive access to the handle's session and stores the
// session fn returns. Concurrent calls for the same handle run one at a time.
func (r *SessionRepository) Update(ctx context.Context, handle uuid.UUID, fn func(*domain.Session) (*domain.Session, error)) (*domain.Session, error) {
	e, err := r.touch(handle)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := fn(e.session)
	if err != nil {
		return nil, err
	}
	if next != nil {
		e.session = next
	}
	return e.session.Clone(), nil
}

func (r *SessionRepository) Delete(ctx context.Context, handle uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[handle]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, handle)
	return nil
}

func (r *SessionRepository) Count(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRepository) touch(handle uuid.UUID) (*sessionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[handle]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	r.clock++
	e.lastUsed = r.clock
	return e, nil
}

// evictOldest must be called with r.mu held
func (r *SessionRepository) evictOldest() {
	var (
		oldest   uuid.UUID
		oldestAt uint64
		found    bool
	)
	for handle, e := range r.sessions {
		if !found || e.lastUsed < oldestAt {
			oldest, oldestAt, found = handle, e.lastUsed, true
		}
	}
	if !found {
		return
	}
	delete(r.sessions, oldest)
	log.Debug().Str("handle", oldest.String()).Msg("evicted least recently used session")
}
