package viz

import (
	"fmt"
	"log"

	"github.com/jengzang/movetank-go/internal/analysis"
	"github.com/jengzang/movetank-go/internal/analysis/cluster"
	"github.com/jengzang/movetank-go/internal/analysis/relations"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/scene"
)

// GlyphRenderer draws every animal or cluster as a ring of binned arcs
// pointing towards its related animals
type GlyphRenderer struct {
	*analysis.BaseRenderer
	viewport   Viewport
	population LinearScale
	entities   *analysis.Reconciler
	overlay    *analysis.Reconciler
	hovered    string
}

// NewGlyphRenderer creates a new glyph renderer
func NewGlyphRenderer(ds *dataset.Dataset, surface scene.Surface, opts analysis.Options) analysis.Renderer {
	return &GlyphRenderer{
		BaseRenderer: analysis.NewBaseRenderer(ds, surface, opts, "glyph"),
		viewport:     NewViewport(ds.EnvironmentExtent(), opts.Viewport),
		population:   PopulationScale(ds.Population(), opts.Glyph),
		entities:     analysis.NewReconciler(surface, LayerEntities, opts.Glyph.FadeFrames, ExitColor),
		overlay:      analysis.NewReconciler(surface, LayerMouseover, 0, ExitColor),
	}
}

// arcWidth returns the bin width of a frame, falling back to the configured one
func (r *GlyphRenderer) arcWidth(params models.FrameParams) float64 {
	if params.ArcWidth > 0 {
		return params.ArcWidth
	}
	return r.Options.Glyph.ArcWidth
}

// Draw renders the frame selected by params
func (r *GlyphRenderer) Draw(params models.FrameParams) (*analysis.DrawResult, error) {
	a := r.Abstract(params)
	f := r.Filter(params)
	width := r.arcWidth(params)
	arcs := relations.BinAll(a.Samples(f), width)
	frame := glyphFrame{
		scale: GlyphLinkScale(f.Max),
		pal:   newPalette(r.Dataset, params),
		width: width,
		arcs:  arcs,
	}

	objects := make([]scene.Object, 0, len(a.Entities))
	for _, e := range a.Entities {
		if e.IsCluster() {
			objects = append(objects, r.clusterObject(e.Cluster, f, frame))
			continue
		}
		objects = append(objects, r.animalObject(e.Record, a.Clustered, params, frame))
	}

	// only clusters fade out, a flat frame replaces animals at once
	r.entities.FadeFrames = 0
	if params.Clustering {
		r.entities.FadeFrames = r.Options.Glyph.FadeFrames
	}

	result := &analysis.DrawResult{
		Renderer: r.Name,
		Time:     params.Time,
		Entities: len(objects),
		Clusters: len(a.Clusters),
		Diffs:    map[string]analysis.Diff{LayerEntities: r.entities.Apply(objects)},
	}
	r.Remember(a, params)

	if r.hovered != "" {
		if _, err := r.highlight(r.hovered); err != nil {
			r.Unhover()
		}
	}
	return result, nil
}

// glyphFrame holds the per-frame values shared by all glyphs
type glyphFrame struct {
	scale ThresholdScale
	pal   palette
	width float64
	arcs  map[string][]models.ArcSample
}

// ring turns the binned samples of an owner into arc primitives
func (g glyphFrame) ring(owner string, inner, outer float64) []scene.Primitive {
	samples := g.arcs[owner]
	ring := make([]scene.Primitive, 0, len(samples))
	for _, s := range samples {
		ring = append(ring, scene.Arc("arc-paths", inner, outer, s.Angle-g.width/2, s.Angle+g.width/2, g.scale.Color(s.Value)))
	}
	return ring
}

func (r *GlyphRenderer) animalObject(rec *models.Record, clustered bool, params models.FrameParams, g glyphFrame) scene.Object {
	cfg := r.Options.Glyph
	outer := cfg.OuterRing
	if clustered {
		outer = r.population.Apply(1)
	}
	p := r.viewport.Project(rec.Position())

	children := []scene.Primitive{
		scene.Circle("outer-circle", 0, 0, outer, White, ""),
		scene.Circle("inner-circle", 0, 0, cfg.AnimalScale, g.pal.recordColor(rec, Black), ""),
		scene.Arrow("arrow", cfg.OuterRing+1, rec.Direction, Black),
	}
	children = append(children, g.ring(rec.AnimalID, cfg.AnimalScale, cfg.OuterRing)...)

	return scene.Object{
		Key:      rec.AnimalID,
		Class:    "animal " + rec.AnimalID,
		X:        p.X,
		Y:        p.Y,
		Tooltip:  moverTooltip(rec, params.Granularity),
		Children: children,
	}
}

func (r *GlyphRenderer) clusterObject(c *models.Cluster, f relations.Filter, g glyphFrame) scene.Object {
	cfg := r.Options.Glyph
	depth := r.population.Apply(float64(c.Num))
	ring := depth + cfg.OuterRingCluster
	p := r.viewport.Project(c.Centroid)

	children := []scene.Primitive{
		scene.Circle("outer-circle-cluster", 0, 0, ring, "", Black),
		scene.Circle("outer-circle", 0, 0, depth, g.pal.featureColor(models.Entity{Cluster: c}, White), ""),
		scene.Arrow("arrow", ring, c.Direction, Black),
	}
	children = append(children, g.ring(c.ID, depth, ring)...)

	nodes := cluster.Layout(c, depth-cfg.NodeSize)
	for _, l := range cluster.InnerLinks(nodes, f) {
		children = append(children, scene.Line("link", l.Start.X, l.Start.Y, l.End.X, l.End.Y, g.scale.Color(l.Value)))
	}
	for _, n := range nodes {
		children = append(children, scene.Circle("node-cluster", n.Offset.X, n.Offset.Y, cfg.NodeSize, g.pal.recordColor(n.Record, Black), ""))
	}

	return scene.Object{
		Key:      clusterKey(c),
		Class:    "cluster " + c.ID,
		X:        p.X,
		Y:        p.Y,
		Tooltip:  clusterTooltip(c),
		Children: children,
	}
}

// Hover draws the live links of an animal or cluster into the overlay layer
// key is the visual key or the entity id; the overlay follows later frames
// until Unhover
func (r *GlyphRenderer) Hover(key string) (*analysis.HoverResult, error) {
	res, err := r.highlight(key)
	if err != nil {
		return nil, err
	}
	r.hovered = key
	log.Printf("[GlyphRenderer] Hover %s: %d links", res.Key, len(res.Links))
	return res, nil
}

func (r *GlyphRenderer) highlight(key string) (*analysis.HoverResult, error) {
	if r.Last == nil {
		return nil, analysis.ErrNotDrawn
	}
	e, ok := r.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", analysis.ErrUnknownKey, key)
	}

	f := r.Filter(r.LastParams)
	scale := GlyphLinkScale(f.Max)
	links := r.Last.LinksOf(e, f)

	seen := make(map[string]int)
	objects := make([]scene.Object, 0, len(links))
	for _, l := range links {
		pair := l.Source + "->" + l.Target
		k := linkKey(l.Source, l.Target, seen[pair])
		seen[pair]++

		start := r.viewport.Project(l.Start)
		end := r.viewport.Project(l.End)
		objects = append(objects, scene.Object{
			Key:      k,
			Class:    "link mouseover-line highlighted",
			Children: []scene.Primitive{scene.Line("link", start.X, start.Y, end.X, end.Y, scale.Color(l.Value))},
		})
	}
	r.overlay.Apply(objects)

	var tooltip string
	if e.IsCluster() {
		tooltip = clusterTooltip(e.Cluster)
	} else {
		tooltip = moverTooltip(e.Record, r.LastParams.Granularity)
	}
	return &analysis.HoverResult{Key: entityKey(e), Tooltip: tooltip, Links: links}, nil
}

// lookup finds a top-level entity of the last frame by visual key or id
func (r *GlyphRenderer) lookup(key string) (models.Entity, bool) {
	for _, e := range r.Last.Entities {
		if entityKey(e) == key {
			return e, true
		}
	}
	return r.Last.Find(key)
}

// Unhover clears the overlay layer
func (r *GlyphRenderer) Unhover() {
	r.hovered = ""
	r.overlay.Clear()
}

func init() {
	analysis.RegisterRenderer("glyph", NewGlyphRenderer)
}
