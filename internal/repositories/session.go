package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"apollohr/resume-screener/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGuideNotFound   = errors.New("interview guide not found")
)

// SessionRepository is the session-scoped context store for the pipeline.
// Results never outlive a session, so the backing store is process memory;
// the interface keeps handlers decoupled from that choice.
type SessionRepository interface {
	Create() *models.Session
	FindByID(id uuid.UUID) (*models.Session, error)
	SetJobDescription(id uuid.UUID, text string) error
	AddResume(id uuid.UUID, filename, text string) error
	SaveResults(id uuid.UUID, results []models.AssessmentRecord) error
	SaveGuide(id uuid.UUID, candidateName string, guide *models.InterviewGuide) error
	FindGuide(id uuid.UUID, candidateName string) (*models.InterviewGuide, error)
	Reset(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

func (r *sessionRepository) Create() *models.Session {
	session := &models.Session{
		ID:        uuid.New(),
		Resumes:   make(map[string]string),
		Guides:    make(map[string]*models.InterviewGuide),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return snapshot(session)
}

// FindByID returns a copy; mutations go through the repository so concurrent
// readers never observe a half-written session.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return snapshot(session), nil
}

func (r *sessionRepository) SetJobDescription(id uuid.UUID, text string) error {
	return r.update(id, func(session *models.Session) {
		session.JobDescription = text
	})
}

func (r *sessionRepository) AddResume(id uuid.UUID, filename, text string) error {
	return r.update(id, func(session *models.Session) {
		session.Resumes[filename] = text
	})
}

func (r *sessionRepository) SaveResults(id uuid.UUID, results []models.AssessmentRecord) error {
	return r.update(id, func(session *models.Session) {
		session.Results = append([]models.AssessmentRecord(nil), results...)
		session.Analyzed = true
	})
}

func (r *sessionRepository) SaveGuide(id uuid.UUID, candidateName string, guide *models.InterviewGuide) error {
	return r.update(id, func(session *models.Session) {
		session.Guides[candidateName] = guide
	})
}

func (r *sessionRepository) FindGuide(id uuid.UUID, candidateName string) (*models.InterviewGuide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	guide, ok := session.Guides[candidateName]
	if !ok {
		return nil, ErrGuideNotFound
	}
	return guide, nil
}

// Reset clears the session's content but keeps the session alive, matching
// the operator's "start over" action.
func (r *sessionRepository) Reset(id uuid.UUID) error {
	return r.update(id, func(session *models.Session) {
		session.JobDescription = ""
		session.Resumes = make(map[string]string)
		session.Results = nil
		session.Analyzed = false
		session.Guides = make(map[string]*models.InterviewGuide)
	})
}

func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) update(id uuid.UUID, fn func(*models.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	fn(session)
	session.UpdatedAt = time.Now()
	return nil
}

func snapshot(session *models.Session) *models.Session {
	copied := *session

	copied.Resumes = make(map[string]string, len(session.Resumes))
	for filename, text := range session.Resumes {
		copied.Resumes[filename] = text
	}

	copied.Results = append([]models.AssessmentRecord(nil), session.Results...)

	copied.Guides = make(map[string]*models.InterviewGuide, len(session.Guides))
	for name, guide := range session.Guides {
		copied.Guides[name] = guide
	}

	return &copied
}
