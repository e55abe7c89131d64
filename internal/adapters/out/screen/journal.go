// internal/adapters/out/screen/journal.go
package screen

import (
	"context"
	"log"
	"sync"
)

// Journal is the backend's view of the presentation layer: it records
// the navigation commands and alerts a tracking session emits, for
// the mobile client to drain on its next poll. It implements
// tracking.Navigator and tracking.Alerter.
type Journal struct {
	mu     sync.Mutex
	events []Event
}

// Event is one presentation command.
type Event struct {
	Kind    string            `json:"kind"` // "navigate" | "back" | "alert"
	Screen  string            `json:"screen,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
	Title   string            `json:"title,omitempty"`
	Message string            `json:"message,omitempty"`
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Navigate(screen string, params map[string]string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, Event{Kind: "navigate", Screen: screen, Params: params})
	log.Printf("[screen] navigate -> %s", screen)
}

func (j *Journal) GoBack() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, Event{Kind: "back"})
	log.Printf("[screen] go back")
}

func (j *Journal) Alert(title, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, Event{Kind: "alert", Title: title, Message: message})
	log.Printf("[screen] alert: %s: %s", title, message)
}

// Drain returns and clears the pending events.
func (j *Journal) Drain() []Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.events
	j.events = nil
	return out
}

// RelayPrompter implements tracking.Prompter for HTTP-driven
// sessions: the confirm dialog runs on the client, the request
// carries the outcome, and the handler relays it here before
// invoking the gate.
type RelayPrompter struct {
	mu     sync.Mutex
	answer bool
}

func NewRelayPrompter() *RelayPrompter {
	return &RelayPrompter{}
}

func (p *RelayPrompter) SetAnswer(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answer = v
}

func (p *RelayPrompter) Confirm(context.Context, string, string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.answer, nil
}
