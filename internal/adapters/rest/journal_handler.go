package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/philly/emitter/internal/journal/application"
	"github.com/philly/emitter/internal/platform/apperror"
)

var ErrInvalidLimit = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeGeneral,
	"limit must be a positive integer",
	http.StatusBadRequest,
)

// JournalEntry is the wire form of a recorded emission
type JournalEntry struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	EmittedAt  time.Time       `json:"emitted_at"`
	RecordedAt time.Time       `json:"recorded_at"`
}

type JournalHandler struct {
	*BaseHandler
	journal *application.JournalService
}

func NewJournalHandler(base *BaseHandler, journal *application.JournalService) *JournalHandler {
	return &JournalHandler{BaseHandler: base, journal: journal}
}

// ListJournal returns the most recent emissions, newest first
func (h *JournalHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.HandleError(w, r, ErrInvalidLimit)
			return
		}
		limit = n
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	response := make([]JournalEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, JournalEntry{
			ID:         e.ID,
			Name:       e.Name,
			Payload:    e.Payload,
			EmittedAt:  e.EmittedAt,
			RecordedAt: e.RecordedAt,
		})
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}
