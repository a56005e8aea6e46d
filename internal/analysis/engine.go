package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jengzang/movetank-go/internal/analysis/cluster"
	"github.com/jengzang/movetank-go/internal/analysis/relations"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/scene"
)

var (
	// ErrUnknownRenderer is returned for a strategy name nobody registered
	ErrUnknownRenderer = errors.New("unknown renderer")
	// ErrNotDrawn is returned when hovering before the first frame
	ErrNotDrawn = errors.New("no frame drawn yet")
	// ErrUnknownKey is returned when hovering a key absent from the last frame
	ErrUnknownKey = errors.New("unknown visual object")
)

// Renderer is the interface that all drawing strategies must implement
type Renderer interface {
	// Draw renders the frame selected by params onto the surface
	Draw(params models.FrameParams) (*DrawResult, error)

	// Hover highlights one top-level object of the last drawn frame
	Hover(key string) (*HoverResult, error)

	// Unhover removes the hover highlight
	Unhover()

	// GetName returns the name of the renderer
	GetName() string
}

// DrawResult summarizes one drawn frame
type DrawResult struct {
	Renderer string          `json:"renderer"`
	Time     int             `json:"time"`
	Entities int             `json:"entities"` // Top-level visual objects
	Clusters int             `json:"clusters"`
	Diffs    map[string]Diff `json:"diffs"` // Per layer
}

// HoverResult describes the highlighted object
type HoverResult struct {
	Key     string        `json:"key"`
	Tooltip string        `json:"tooltip"`
	Links   []models.Link `json:"links"`
}

// Options sizes the renderers
type Options struct {
	Viewport config.ViewportConfig
	Glyph    config.GlyphConfig
	Network  config.NetworkConfig
}

// OptionsFrom extracts the renderer options of a configuration
func OptionsFrom(cfg *config.Config) Options {
	return Options{Viewport: cfg.Viewport, Glyph: cfg.Glyph, Network: cfg.Network}
}

// BaseRenderer provides common functionality for all renderers
type BaseRenderer struct {
	Dataset *dataset.Dataset
	Surface scene.Surface
	Options Options
	Name    string

	// Last drawn frame, used by Hover
	Last       *cluster.Abstraction
	LastParams models.FrameParams
}

// NewBaseRenderer creates a new base renderer
func NewBaseRenderer(ds *dataset.Dataset, surface scene.Surface, opts Options, name string) *BaseRenderer {
	return &BaseRenderer{
		Dataset: ds,
		Surface: surface,
		Options: opts,
		Name:    name,
	}
}

// GetName returns the renderer name
func (r *BaseRenderer) GetName() string {
	return r.Name
}

// Filter builds the relationship filter of a frame
func (r *BaseRenderer) Filter(params models.FrameParams) relations.Filter {
	return relations.Filter{Max: r.Dataset.WeightMax(), Threshold: params.Threshold}
}

// Abstract builds the (possibly clustered) view of the frame selected by params
// Unknown times give an empty view
func (r *BaseRenderer) Abstract(params models.FrameParams) *cluster.Abstraction {
	snap := r.Dataset.Snapshot(params.Time)
	if params.Clustering {
		return cluster.Abstract(snap, params.Granularity)
	}
	return cluster.Flat(snap)
}

// Remember stores the frame Hover works on
func (r *BaseRenderer) Remember(a *cluster.Abstraction, params models.FrameParams) {
	r.Last = a
	r.LastParams = params
}

// RendererFactory is a function that creates a renderer instance
type RendererFactory func(ds *dataset.Dataset, surface scene.Surface, opts Options) Renderer

// RendererRegistry maps strategy names to renderer factories
var RendererRegistry = make(map[string]RendererFactory)

// RegisterRenderer registers a renderer factory for a strategy name
func RegisterRenderer(name string, factory RendererFactory) {
	RendererRegistry[name] = factory
}

// GetRenderer creates a renderer instance for a strategy name
func GetRenderer(name string, ds *dataset.Dataset, surface scene.Surface, opts Options) (Renderer, error) {
	factory, ok := RendererRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return factory(ds, surface, opts), nil
}

// IsRenderer checks if a strategy name is registered
func IsRenderer(name string) bool {
	_, ok := RendererRegistry[name]
	return ok
}

// RendererNames returns the registered strategy names in order
func RendererNames() []string {
	names := make([]string, 0, len(RendererRegistry))
	for name := range RendererRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
