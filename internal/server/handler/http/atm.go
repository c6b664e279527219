// Package http provides the HTTP presentation adapter for the ATM. It
// translates key labels arriving over the wire into session key events and
// exposes the machine's two display lines.
package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/atmlab/teller/internal/session"
)

// ATMHandler serves the keypad endpoints over a single session machine.
// The machine itself is single-session and purely synchronous, so the
// handler serializes key events through a mutex; supporting multiple
// simultaneous sessions would require one machine per session instead.
type ATMHandler struct {
	mu      sync.Mutex
	Session *session.Session
}

// KeyRequest represents the JSON payload of one key press.
type KeyRequest struct {
	// Key is the key label, e.g. "7", "CLR", "Ent" or "withdraw".
	Key string `json:"key"`
}

// DisplayResponse carries the two display lines and the machine state.
type DisplayResponse struct {
	Display1 string `json:"display1"`
	Display2 string `json:"display2"`
	State    string `json:"state"`
}

// Press handles one key press. It expects a JSON body with a non-empty
// "key" field, feeds the label into the session machine and responds with
// the recomputed display lines.
func (h *ATMHandler) Press(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.Session.Press(req.Key)
	resp := h.snapshot()
	h.mu.Unlock()

	writeJSON(w, resp)
}

// Display responds with the current display lines without consuming input.
func (h *ATMHandler) Display(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := h.snapshot()
	h.mu.Unlock()

	writeJSON(w, resp)
}

func (h *ATMHandler) snapshot() DisplayResponse {
	return DisplayResponse{
		Display1: h.Session.Display1(),
		Display2: h.Session.Display2(),
		State:    h.Session.State().String(),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
