package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/support-assistant/internal/api/middleware"
	"github.com/Rrens/support-assistant/internal/api/response"
	"github.com/Rrens/support-assistant/internal/domain"
	"github.com/Rrens/support-assistant/internal/service"
)

// SupportInfo is the static contact block shown next to the chat
type SupportInfo struct {
	CompanyName  string `json:"company_name"`
	SupportEmail string `json:"support_email"`
	Hours        string `json:"hours"`
}

// ViewOptions controls what the rendered session exposes
type ViewOptions struct {
	Support           SupportInfo
	RatingPromptAfter int
}

// SessionView is everything the page needs to render one session
type SessionView struct {
	Handle             uuid.UUID        `json:"handle"`
	SessionID          string           `json:"session_id"`
	Transcript         []domain.Message `json:"transcript"`
	MessageCount       int              `json:"message_count"`
	SatisfactionRating *int             `json:"satisfaction_rating"`
	ShowRatingPrompt   bool             `json:"show_rating_prompt"`
	ShowWelcome        bool             `json:"show_welcome"`
	ExportFilename     string           `json:"export_filename,omitempty"`
	Support            SupportInfo      `json:"support"`
}

// ReplyView is returned for message and topic submissions
type ReplyView struct {
	Reply   service.Reply `json:"reply"`
	Session SessionView   `json:"session"`
}

type SessionHandler struct {
	sessions domain.SessionRepository
	support  *service.SupportService
	opts     ViewOptions
	now      func() time.Time
}

func NewSessionHandler(sessions domain.SessionRepository, support *service.SupportService, opts ViewOptions) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		support:  support,
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a session for a new client
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := domain.NewSession(h.now())

	handle, err := h.sessions.Create(r.Context(), session)
	if err != nil {
		response.InternalError(w, "failed to create session")
		return
	}

	log.Info().Str("handle", handle.String()).Str("session_id", session.ID).Msg("Session created")
	response.Created(w, h.view(handle, session))
}

// Get renders the current session state
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	session, err := h.sessions.Get(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, h.view(handle, session))
}

// Delete ends the client's session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	if err := h.sessions.Delete(r.Context(), handle); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}

// SendMessage handles a free-text customer message
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content string `json:"content" validate:"required"`
	}
	h.submit(w, r, &input, func(ctx context.Context, s *domain.Session) (service.Reply, error) {
		return h.support.SendMessage(ctx, s, input.Content), nil
	})
}

// StartTopic handles a quick topic selection
func (h *SessionHandler) StartTopic(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Topic string `json:"topic" validate:"required"`
	}
	h.submit(w, r, &input, func(ctx context.Context, s *domain.Session) (service.Reply, error) {
		return h.support.StartTopic(ctx, s, input.Topic)
	})
}

// submit serializes one model round trip per session handle
func (h *SessionHandler) submit(w http.ResponseWriter, r *http.Request, input any, run func(context.Context, *domain.Session) (service.Reply, error)) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	if !decodeAndValidate(w, r, input) {
		return
	}

	// In-flight completions are not aborted when the client goes away.
	ctx := context.WithoutCancel(r.Context())

	var reply service.Reply
	session, err := h.sessions.Update(ctx, handle, func(s *domain.Session) (*domain.Session, error) {
		var err error
		reply, err = run(ctx, s)
		return s, err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, ReplyView{Reply: reply, Session: h.view(handle, session)})
}

// Reset replaces the session with a fresh one under the same handle
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	var previous string
	session, err := h.sessions.Update(r.Context(), handle, func(s *domain.Session) (*domain.Session, error) {
		previous = s.ID
		return s.Reset(h.now()), nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("previous_session_id", previous).Str("session_id", session.ID).Msg("Session reset")
	response.OK(w, h.view(handle, session))
}

// Rate records the satisfaction rating once per session
func (h *SessionHandler) Rate(w http.ResponseWriter, r *http.Request) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	var input struct {
		Value int `json:"value" validate:"required,min=1,max=5"`
	}
	if !decodeAndValidate(w, r, &input) {
		return
	}

	session, err := h.sessions.Update(r.Context(), handle, func(s *domain.Session) (*domain.Session, error) {
		return s, s.SetRating(input.Value)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().Str("session_id", session.ID).Int("rating", input.Value).Msg("Satisfaction rating recorded")
	response.OK(w, h.view(handle, session))
}

// Export downloads the transcript as plain text
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	handle, ok := middleware.GetSessionHandle(r.Context())
	if !ok {
		response.BadRequest(w, "missing session handle")
		return
	}

	session, err := h.sessions.Get(r.Context(), handle)
	if err != nil {
		writeError(w, err)
		return
	}

	if session.MessageCount() == 0 {
		response.NotFound(w, "nothing to export yet")
		return
	}

	response.Attachment(w, session.ExportFilename(), session.ExportText())
}

func (h *SessionHandler) view(handle uuid.UUID, s *domain.Session) SessionView {
	v := SessionView{
		Handle:             handle,
		SessionID:          s.ID,
		Transcript:         s.Transcript,
		MessageCount:       s.MessageCount(),
		SatisfactionRating: s.Rating,
		ShowRatingPrompt:   s.ShouldPromptRating(h.opts.RatingPromptAfter),
		ShowWelcome:        s.MessageCount() == 0,
		Support:            h.opts.Support,
	}
	if v.MessageCount > 0 {
		v.ExportFilename = s.ExportFilename()
	}
	return v
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrRatingAlreadySet):
		response.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrInvalidRating), errors.Is(err, domain.ErrUnknownTopic):
		response.BadRequest(w, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		response.InternalError(w, "internal error")
	}
}
