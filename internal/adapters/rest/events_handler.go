package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/philly/emitter/internal/adapters/rest/middleware"
	"github.com/philly/emitter/internal/platform/apperror"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/validator"
)

// maxPayloadBytes caps the request body accepted as an event payload
const maxPayloadBytes = 1 << 20

var (
	ErrInvalidEventName = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidEventName,
		"invalid event name",
		http.StatusBadRequest,
	)

	ErrInvalidPayload = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidPayload,
		"payload must be a single JSON value of at most 1 MiB",
		http.StatusBadRequest,
	)
)

// EventSummary describes one registered event name
type EventSummary struct {
	Name      string `json:"name"`
	Listeners int    `json:"listeners"`
}

// EmitResponse reports the outcome of a synchronous emission
type EmitResponse struct {
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	Delivered int       `json:"delivered"`
	Failed    int       `json:"failed"`
}

// EventsHandler lets HTTP clients inspect the bus and emit events on it
type EventsHandler struct {
	*BaseHandler
	bus *eventbus.Bus
}

func NewEventsHandler(base *BaseHandler, bus *eventbus.Bus) *EventsHandler {
	return &EventsHandler{BaseHandler: base, bus: bus}
}

// ListEvents returns every event name that has listeners
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	names := h.bus.Names()
	summaries := make([]EventSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, EventSummary{
			Name:      string(name),
			Listeners: h.bus.ListenerCount(name),
		})
	}

	h.WriteJSONResponse(w, r, summaries, http.StatusOK)
}

// EmitEvent dispatches the request body to the listeners of {name}.
// An empty body emits a null payload.
func (h *EventsHandler) EmitEvent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := validator.ValidateEventName(name, validator.MaxEventNameLength); err != nil {
		h.HandleError(w, r, apperror.Wrap(
			err,
			ErrInvalidEventName.Code,
			ErrInvalidEventName.BusinessCode,
			err.Error(),
			ErrInvalidEventName.HTTPStatus,
		))
		return
	}

	payload, err := decodePayload(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.HandleError(w, r, apperror.Wrap(
			err,
			ErrInvalidPayload.Code,
			ErrInvalidPayload.BusinessCode,
			ErrInvalidPayload.Message,
			ErrInvalidPayload.HTTPStatus,
		))
		return
	}

	receipt := h.bus.Dispatch(r.Context(), eventbus.EventName(name), payload)
	if receipt.Err != nil {
		h.HandleError(w, r, receipt.Err)
		return
	}

	subject, _ := middleware.GetSubject(r.Context())
	h.logger.Info(r.Context(), "event emitted over http",
		"event", name,
		"event_id", receipt.EventID,
		"delivered", receipt.Delivered,
		"failed", receipt.Failed,
		"subject", subject,
	)

	h.WriteJSONResponse(w, r, EmitResponse{
		EventID:   receipt.EventID,
		Name:      name,
		Delivered: receipt.Delivered,
		Failed:    receipt.Failed,
	}, http.StatusAccepted)
}

// decodePayload reads exactly one JSON value. Objects decode to map[string]any.
func decodePayload(body io.Reader) (any, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return payload, nil
}
