// Package playback owns the application state and the draw loop.
package playback

import (
	"sync"

	"github.com/jengzang/movetank-go/internal/models"
)

// State is the frame-scope control state
// The player copies it once per tick so controls never change mid-frame
type State struct {
	Playing     bool    `json:"playing"`
	Time        int     `json:"time"`
	Strategy    string  `json:"strategy"`
	Threshold   float64 `json:"threshold"`
	Clustering  bool    `json:"clustering"`
	Granularity int     `json:"granularity"`
	Feature     string  `json:"feature"`
	ArcWidth    float64 `json:"arc_width"`
}

// Params returns the renderer inputs of the state
func (s State) Params() models.FrameParams {
	return models.FrameParams{
		Time:        s.Time,
		Threshold:   s.Threshold,
		Clustering:  s.Clustering,
		Granularity: s.Granularity,
		Feature:     s.Feature,
		ArcWidth:    s.ArcWidth,
	}
}

// AppState guards the state shared by the loop and the control surface
type AppState struct {
	mu    sync.RWMutex
	state State
}

// NewAppState creates the shared state
func NewAppState(initial State) *AppState {
	return &AppState{state: initial}
}

// Snapshot returns a copy of the current state
func (a *AppState) Snapshot() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Update applies fn under the lock and returns the new state
func (a *AppState) Update(fn func(*State)) State {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.state)
	return a.state
}
