package analysis

import (
	"errors"
	"testing"

	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/scene"
)

type stubRenderer struct {
	*BaseRenderer
}

func (s *stubRenderer) Draw(params models.FrameParams) (*DrawResult, error) {
	return &DrawResult{Renderer: s.Name, Time: params.Time}, nil
}

func (s *stubRenderer) Hover(key string) (*HoverResult, error) {
	return nil, ErrNotDrawn
}

func (s *stubRenderer) Unhover() {}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	records := []models.Record{
		{AnimalID: "a", Time: 1, X: 0, Y: 0, Clusters: map[int]int{0: 2}, Weights: map[string]float64{"b": 2}},
		{AnimalID: "b", Time: 1, X: 2, Y: 0, Clusters: map[int]int{0: 2}, Weights: map[string]float64{"a": 6}},
		{AnimalID: "c", Time: 1, X: 1, Y: 3, Clusters: map[int]int{0: -1}},
	}
	ds, err := dataset.New(records)
	if err != nil {
		t.Fatalf("dataset.New failed: %v", err)
	}
	return ds
}

func TestRegistry(t *testing.T) {
	RegisterRenderer("stub", func(ds *dataset.Dataset, surface scene.Surface, opts Options) Renderer {
		return &stubRenderer{NewBaseRenderer(ds, surface, opts, "stub")}
	})
	defer delete(RendererRegistry, "stub")

	if !IsRenderer("stub") {
		t.Fatal("stub should be registered")
	}

	ds := testDataset(t)
	r, err := GetRenderer("stub", ds, scene.NewCanvas(), OptionsFrom(config.Default()))
	if err != nil {
		t.Fatalf("GetRenderer failed: %v", err)
	}
	if r.GetName() != "stub" {
		t.Errorf("expected name stub, got %q", r.GetName())
	}

	if _, err := GetRenderer("missing", ds, scene.NewCanvas(), Options{}); !errors.Is(err, ErrUnknownRenderer) {
		t.Errorf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestBaseRendererAbstract(t *testing.T) {
	ds := testDataset(t)
	base := NewBaseRenderer(ds, scene.NewCanvas(), Options{}, "base")

	flat := base.Abstract(models.FrameParams{Time: 1})
	if len(flat.Entities) != 3 {
		t.Errorf("expected 3 flat entities, got %d", len(flat.Entities))
	}

	clustered := base.Abstract(models.FrameParams{Time: 1, Clustering: true, Granularity: 0})
	if len(clustered.Entities) != 2 || len(clustered.Clusters) != 1 {
		t.Errorf("expected one cluster and one passthrough, got %d entities, %d clusters",
			len(clustered.Entities), len(clustered.Clusters))
	}

	empty := base.Abstract(models.FrameParams{Time: 99})
	if len(empty.Entities) != 0 {
		t.Errorf("unknown time should give an empty frame, got %d entities", len(empty.Entities))
	}

	f := base.Filter(models.FrameParams{Threshold: 1})
	if f.Max != 6 || f.Threshold != 1 {
		t.Errorf("unexpected filter %+v", f)
	}
}
