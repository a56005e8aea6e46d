package playback

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jengzang/movetank-go/internal/analysis"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/scene"
)

// Player draws the frames of a dataset onto a surface
type Player struct {
	dataset *dataset.Dataset
	surface scene.Surface
	opts    analysis.Options
	state   *AppState
	delay   time.Duration

	mu       sync.Mutex // Serializes drawing
	renderer analysis.Renderer
	last     *analysis.DrawResult

	wake chan struct{}
}

// NewPlayer creates a player starting at the first time of the dataset
func NewPlayer(ds *dataset.Dataset, surface scene.Surface, state *AppState, opts analysis.Options, delay time.Duration) *Player {
	first, _ := ds.TimeRange()
	state.Update(func(s *State) {
		if _, ok := ds.Frame(s.Time); !ok {
			s.Time = first
		}
	})
	return &Player{
		dataset: ds,
		surface: surface,
		opts:    opts,
		state:   state,
		delay:   delay,
		wake:    make(chan struct{}, 1),
	}
}

// State returns the shared state
func (p *Player) State() *AppState {
	return p.state
}

// Step draws the current time and advances to the next one, wrapping at the end
func (p *Player) Step() (*analysis.DrawResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state.Snapshot()
	res, err := p.draw(s)
	if err != nil {
		return nil, err
	}
	next := p.dataset.Next(s.Time)
	p.state.Update(func(st *State) {
		// a seek during the draw wins over the advance
		if st.Time == s.Time {
			st.Time = next
		}
	})
	return res, nil
}

// Refresh redraws the current time without advancing
func (p *Player) Refresh() (*analysis.DrawResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draw(p.state.Snapshot())
}

// draw renders one frame; the caller holds p.mu
// A missing renderer, a strategy change or an emptied surface rebuilds the renderer
func (p *Player) draw(s State) (*analysis.DrawResult, error) {
	if p.renderer != nil && p.renderer.GetName() != s.Strategy {
		p.surface.Clear()
		p.renderer = nil
	}
	if p.renderer == nil || p.surface.Empty() {
		r, err := analysis.GetRenderer(s.Strategy, p.dataset, p.surface, p.opts)
		if err != nil {
			return nil, err
		}
		p.surface.Clear()
		p.renderer = r
		log.Printf("[Player] Built %s renderer", s.Strategy)
	}

	res, err := p.renderer.Draw(s.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to draw time %d: %w", s.Time, err)
	}
	p.last = res
	return res, nil
}

// Apply changes the controls; a paused player redraws the current time once
func (p *Player) Apply(fn func(*State)) (State, *analysis.DrawResult, error) {
	s := p.state.Update(fn)
	if s.Playing {
		return s, nil, nil
	}
	res, err := p.Refresh()
	return s, res, err
}

// SetStrategy swaps the drawing strategy and clears the surface
func (p *Player) SetStrategy(name string) error {
	if !analysis.IsRenderer(name) {
		return fmt.Errorf("%w: %q", analysis.ErrUnknownRenderer, name)
	}

	p.mu.Lock()
	p.state.Update(func(s *State) { s.Strategy = name })
	p.surface.Clear()
	p.renderer = nil
	p.mu.Unlock()

	log.Printf("[Player] Strategy set to %s", name)
	return nil
}

// Play resumes the loop
func (p *Player) Play() {
	p.state.Update(func(s *State) { s.Playing = true })
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Pause stops the loop before its next tick
func (p *Player) Pause() {
	p.state.Update(func(s *State) { s.Playing = false })
}

// Hover highlights an object of the last drawn frame
func (p *Player) Hover(key string) (*analysis.HoverResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderer == nil {
		return nil, analysis.ErrNotDrawn
	}
	return p.renderer.Hover(key)
}

// Unhover removes the highlight
func (p *Player) Unhover() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderer != nil {
		p.renderer.Unhover()
	}
}

// Last returns the result of the latest draw
func (p *Player) Last() *analysis.DrawResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Run steps while the state is playing and waits the fixed delay after
// every frame; it returns when ctx is cancelled
func (p *Player) Run(ctx context.Context) error {
	log.Printf("[Player] Loop started (delay %v)", p.delay)
	for {
		if !p.state.Snapshot().Playing {
			select {
			case <-ctx.Done():
				log.Printf("[Player] Loop stopped")
				return nil
			case <-p.wake:
				continue
			}
		}

		if _, err := p.Step(); err != nil {
			log.Printf("[Player] Step failed: %v", err)
		}

		timer := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("[Player] Loop stopped")
			return nil
		case <-timer.C:
		}
	}
}
