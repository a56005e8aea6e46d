package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/jengzang/movetank-go/internal/analysis"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/playback"
	"github.com/jengzang/movetank-go/internal/repository"
	"github.com/jengzang/movetank-go/internal/scene"

	// Import renderer packages to register them
	_ "github.com/jengzang/movetank-go/internal/analysis/viz"
)

var (
	// ErrNoDataset is returned when a stored dataset has no records
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrInvalidControl is returned for out-of-range control values
	ErrInvalidControl = errors.New("invalid control value")
)

// ControlUpdate changes some of the frame controls; nil fields are kept
type ControlUpdate struct {
	Time        *int     `json:"time"`
	Threshold   *float64 `json:"threshold"`
	Clustering  *bool    `json:"clustering"`
	Granularity *int     `json:"granularity"`
	Feature     *string  `json:"feature"`
	ArcWidth    *float64 `json:"arc_width"`
}

// SceneView is the current drawing with the state it was drawn from
type SceneView struct {
	State playback.State       `json:"state"`
	Last  *analysis.DrawResult `json:"last,omitempty"`
	Scene scene.Scene          `json:"scene"`
}

// SceneService handles the playback of one dataset
type SceneService struct {
	name    string
	cfg     *config.Config
	dataset *dataset.Dataset
	canvas  *scene.Canvas
	player  *playback.Player
}

// NewSceneService creates a scene service over a loaded dataset
func NewSceneService(name string, ds *dataset.Dataset, cfg *config.Config) *SceneService {
	canvas := scene.NewCanvas()
	state := playback.NewAppState(InitialState(cfg))
	return &SceneService{
		name:    name,
		cfg:     cfg,
		dataset: ds,
		canvas:  canvas,
		player:  playback.NewPlayer(ds, canvas, state, analysis.OptionsFrom(cfg), cfg.Playback.Delay()),
	}
}

// LoadSceneService reads a stored dataset and creates its scene service
func LoadSceneService(ctx context.Context, repo *repository.RecordRepository, name string, cfg *config.Config) (*SceneService, error) {
	records, err := repo.LoadDataset(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDataset, name)
	}
	ds, err := dataset.New(records)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset %s: %w", name, err)
	}
	return NewSceneService(name, ds, cfg), nil
}

// InitialState returns the paused state a new player starts from
func InitialState(cfg *config.Config) playback.State {
	return playback.State{
		Strategy: cfg.Playback.Strategy,
		Feature:  models.NoFeature,
		ArcWidth: cfg.Glyph.ArcWidth,
	}
}

// Dataset returns the dataset played by the service
func (s *SceneService) Dataset() *dataset.Dataset {
	return s.dataset
}

// Summary describes the dataset
func (s *SceneService) Summary() models.DatasetSummary {
	return Summarize(s.name, s.dataset)
}

// Summarize describes a dataset
func Summarize(name string, ds *dataset.Dataset) models.DatasetSummary {
	weights := ds.WeightExtent()
	env := ds.EnvironmentExtent()
	return models.DatasetSummary{
		Name:          name,
		Records:       ds.Len(),
		Times:         ds.Times(),
		Population:    ds.Population(),
		WeightMin:     weights.Lo,
		WeightMax:     ds.WeightMax(),
		Environment:   [4]float64{env.X.Lo, env.Y.Lo, env.X.Hi, env.Y.Hi},
		Granularities: ds.Granularities(),
		NumClusters:   ds.NumClusters(),
		Features:      ds.Features(),
	}
}

// State returns the current controls
func (s *SceneService) State() playback.State {
	return s.player.State().Snapshot()
}

// View returns the current drawing
func (s *SceneService) View() SceneView {
	return SceneView{
		State: s.State(),
		Last:  s.player.Last(),
		Scene: s.canvas.Export(),
	}
}

// Play resumes playback
func (s *SceneService) Play() playback.State {
	s.player.Play()
	return s.State()
}

// Pause stops playback before the next frame
func (s *SceneService) Pause() playback.State {
	s.player.Pause()
	return s.State()
}

// Step draws the current frame and advances
func (s *SceneService) Step() (*analysis.DrawResult, error) {
	return s.player.Step()
}

// UpdateControls validates and applies a control change
func (s *SceneService) UpdateControls(u ControlUpdate) (playback.State, *analysis.DrawResult, error) {
	if err := s.validate(u); err != nil {
		return playback.State{}, nil, err
	}
	return s.player.Apply(func(st *playback.State) {
		if u.Time != nil {
			st.Time = *u.Time
		}
		if u.Threshold != nil {
			st.Threshold = *u.Threshold
		}
		if u.Clustering != nil {
			st.Clustering = *u.Clustering
		}
		if u.Granularity != nil {
			st.Granularity = *u.Granularity
		}
		if u.Feature != nil {
			st.Feature = *u.Feature
		}
		if u.ArcWidth != nil {
			st.ArcWidth = *u.ArcWidth
		}
	})
}

func (s *SceneService) validate(u ControlUpdate) error {
	if u.Threshold != nil {
		// the threshold spans the weight range
		if *u.Threshold < 0 || *u.Threshold > s.dataset.WeightMax() {
			return fmt.Errorf("%w: threshold %v outside [0, %v]", ErrInvalidControl, *u.Threshold, s.dataset.WeightMax())
		}
	}
	if u.Granularity != nil && !slices.Contains(s.dataset.Granularities(), *u.Granularity) {
		return fmt.Errorf("%w: unknown granularity %d", ErrInvalidControl, *u.Granularity)
	}
	if u.Feature != nil && *u.Feature != models.NoFeature && !slices.Contains(s.dataset.Features(), *u.Feature) {
		return fmt.Errorf("%w: unknown feature %q", ErrInvalidControl, *u.Feature)
	}
	if u.ArcWidth != nil && *u.ArcWidth <= 0 {
		return fmt.Errorf("%w: arc width must be positive", ErrInvalidControl)
	}
	return nil
}

// SetStrategy swaps the drawing strategy
func (s *SceneService) SetStrategy(name string) (playback.State, error) {
	if err := s.player.SetStrategy(name); err != nil {
		return playback.State{}, err
	}
	return s.State(), nil
}

// Hover highlights an object of the current drawing
func (s *SceneService) Hover(key string) (*analysis.HoverResult, error) {
	return s.player.Hover(key)
}

// Unhover removes the highlight
func (s *SceneService) Unhover() {
	s.player.Unhover()
}

// Run plays the dataset until ctx is cancelled
func (s *SceneService) Run(ctx context.Context) error {
	log.Printf("[SceneService] Playing dataset %s (%d frames)", s.name, len(s.dataset.Times()))
	return s.player.Run(ctx)
}

// RenderFrame draws a single frame onto a fresh canvas
func RenderFrame(ds *dataset.Dataset, cfg *config.Config, strategy string, params models.FrameParams) (scene.Scene, *analysis.DrawResult, error) {
	canvas := scene.NewCanvas()
	r, err := analysis.GetRenderer(strategy, ds, canvas, analysis.OptionsFrom(cfg))
	if err != nil {
		return scene.Scene{}, nil, err
	}
	if params.ArcWidth <= 0 {
		params.ArcWidth = cfg.Glyph.ArcWidth
	}
	res, err := r.Draw(params)
	if err != nil {
		return scene.Scene{}, nil, err
	}
	return canvas.Export(), res, nil
}
