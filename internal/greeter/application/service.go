package application

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/philly/emitter/internal/platform/apperror"
	"github.com/philly/emitter/internal/platform/eventbus"
	"github.com/philly/emitter/internal/platform/events"
	"github.com/philly/emitter/internal/platform/logger"
)

// ErrInvalidGreetPayload is returned for payloads that carry no usable name
var ErrInvalidGreetPayload = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeInvalidPayload,
	"greet payload must be a non-empty name or an object with a name field",
	http.StatusBadRequest,
)

var greetingTemplate = template.Must(template.New("greeting").Parse(`<div>{{.Greeting}} {{.Name}}</div>`))

// Config holds the greeter settings
type Config struct {
	Greeting string
	Output   io.Writer
}

// Greeter answers "greet" events with a line on its output and a rendered HTML fragment.
type Greeter struct {
	bus       *eventbus.Bus
	logger    logger.Logger
	greeting  string
	sanitizer *bluemonday.Policy

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// NewGreeter creates a greeter; call Subscribe to attach it to the bus.
func NewGreeter(bus *eventbus.Bus, config Config, logger logger.Logger) *Greeter {
	greeting := strings.TrimSpace(config.Greeting)
	if greeting == "" {
		greeting = "Hello"
	}
	out := config.Output
	if out == nil {
		out = io.Discard
	}

	return &Greeter{
		bus:       bus,
		logger:    logger,
		greeting:  greeting,
		sanitizer: bluemonday.StrictPolicy(),
		out:       out,
	}
}

// Subscribe registers the greeter for greet events.
func (g *Greeter) Subscribe() eventbus.Subscription {
	return g.bus.Register(events.GreetTopic, g)
}

// Handle implements eventbus.Listener.
func (g *Greeter) Handle(ctx context.Context, event eventbus.Event) error {
	name, err := g.nameFrom(event.Payload)
	if err != nil {
		return err
	}

	text := g.greeting + " " + name

	g.mu.Lock()
	_, err = fmt.Fprintln(g.out, text)
	g.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to write greeting: %w", err)
	}

	var buf bytes.Buffer
	if err := greetingTemplate.Execute(&buf, struct{ Greeting, Name string }{g.greeting, name}); err != nil {
		return fmt.Errorf("failed to render greeting: %w", err)
	}

	g.logger.Info(ctx, "greeting delivered", "event_id", event.ID, "name", name)

	g.bus.Emit(ctx, events.GreetRenderedTopic, events.GreetingRenderedEvent{
		Name: name,
		Text: text,
		HTML: buf.String(),
	})
	return nil
}

// nameFrom extracts the name and strips any markup from it.
func (g *Greeter) nameFrom(payload any) (string, error) {
	var raw string
	switch p := payload.(type) {
	case string:
		raw = p
	case map[string]any:
		name, ok := p["name"].(string)
		if !ok {
			return "", ErrInvalidGreetPayload
		}
		raw = name
	case fmt.Stringer:
		raw = p.String()
	default:
		return "", ErrInvalidGreetPayload
	}

	// StrictPolicy returns escaped text; unescape so the template escapes exactly once.
	name := strings.TrimSpace(html.UnescapeString(g.sanitizer.Sanitize(raw)))
	if name == "" {
		return "", ErrInvalidGreetPayload
	}
	return name, nil
}
