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

// NetworkRenderer draws one node per animal and one line per relationship
// Positions are always the true positions, clustering only recolors nodes
type NetworkRenderer struct {
	*analysis.BaseRenderer
	viewport Viewport
	links    *analysis.Reconciler
	nodes    *analysis.Reconciler
	overlay  *analysis.Reconciler
	hovered  string
}

// NewNetworkRenderer creates a new network renderer
func NewNetworkRenderer(ds *dataset.Dataset, surface scene.Surface, opts analysis.Options) analysis.Renderer {
	return &NetworkRenderer{
		BaseRenderer: analysis.NewBaseRenderer(ds, surface, opts, "network"),
		viewport:     NewViewport(ds.EnvironmentExtent(), opts.Viewport),
		links:        analysis.NewReconciler(surface, LayerLinks, 0, ExitColor),
		nodes:        analysis.NewReconciler(surface, LayerNodes, 0, ExitColor),
		overlay:      analysis.NewReconciler(surface, LayerMouseover, 0, ExitColor),
	}
}

// Draw renders the frame selected by params
func (r *NetworkRenderer) Draw(params models.FrameParams) (*analysis.DrawResult, error) {
	snap := r.Dataset.Snapshot(params.Time)
	a := cluster.Flat(snap)
	f := r.Filter(params)
	scale := NetworkLinkScale(f.Max)
	pal := newPalette(r.Dataset, params)

	links := relations.Links(snap, f)
	linkObjects := make([]scene.Object, 0, len(links))
	for _, l := range links {
		linkObjects = append(linkObjects, r.linkObject(linkKey(l.Source, l.Target, 0), l, scale, "link "+l.Source+" "+l.Target))
	}

	nodeObjects := make([]scene.Object, 0, len(snap.Frame))
	for i := range snap.Frame {
		nodeObjects = append(nodeObjects, r.nodeObject(&snap.Frame[i], params, pal))
	}

	result := &analysis.DrawResult{
		Renderer: r.Name,
		Time:     params.Time,
		Entities: len(nodeObjects),
		Diffs: map[string]analysis.Diff{
			LayerLinks: r.links.Apply(linkObjects),
			LayerNodes: r.nodes.Apply(nodeObjects),
		},
	}
	r.Remember(a, params)

	if r.hovered != "" {
		if _, err := r.highlight(r.hovered); err != nil {
			r.Unhover()
		}
	}
	return result, nil
}

// nodeColor picks feature, cluster or plain coloring in that priority
func (r *NetworkRenderer) nodeColor(rec *models.Record, params models.FrameParams, pal palette) string {
	fill := Black
	if params.Clustering {
		if label, ok := rec.Label(params.Granularity); ok {
			fill = ClusterColor(label)
		}
	}
	return pal.recordColor(rec, fill)
}

func (r *NetworkRenderer) nodeObject(rec *models.Record, params models.FrameParams, pal palette) scene.Object {
	p := r.viewport.Project(rec.Position())
	radius := r.Options.Network.AnimalScale
	return scene.Object{
		Key:     rec.AnimalID,
		Class:   "animal " + rec.AnimalID,
		X:       p.X,
		Y:       p.Y,
		Tooltip: moverTooltip(rec, params.Granularity),
		Children: []scene.Primitive{
			scene.Circle("node", 0, 0, radius, r.nodeColor(rec, params, pal), ""),
			scene.Arrow("arrow", radius+1, rec.Direction, Black),
		},
	}
}

func (r *NetworkRenderer) linkObject(key string, l models.Link, scale ThresholdScale, class string) scene.Object {
	start := r.viewport.Project(l.Start)
	end := r.viewport.Project(l.End)
	return scene.Object{
		Key:      key,
		Class:    class,
		Children: []scene.Primitive{scene.Line("link", start.X, start.Y, end.X, end.Y, scale.Color(l.Value))},
	}
}

// Hover highlights an animal and every link touching it
// The highlight follows the animal through later frames until Unhover
func (r *NetworkRenderer) Hover(key string) (*analysis.HoverResult, error) {
	res, err := r.highlight(key)
	if err != nil {
		return nil, err
	}
	r.hovered = key
	log.Printf("[NetworkRenderer] Hover %s: %d links", key, len(res.Links))
	return res, nil
}

func (r *NetworkRenderer) highlight(key string) (*analysis.HoverResult, error) {
	if r.Last == nil {
		return nil, analysis.ErrNotDrawn
	}
	rec, ok := r.Last.Snapshot.Frame.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", analysis.ErrUnknownKey, key)
	}

	f := r.Filter(r.LastParams)
	scale := NetworkLinkScale(f.Max)
	pal := newPalette(r.Dataset, r.LastParams)

	var touching []models.Link
	objects := []scene.Object{}
	for _, l := range relations.Links(r.Last.Snapshot, f) {
		if l.Source != key && l.Target != key {
			continue
		}
		touching = append(touching, l)
		objects = append(objects, r.linkObject(linkKey(l.Source, l.Target, 0), l, scale, "link highlighted"))
	}
	node := r.nodeObject(rec, r.LastParams, pal)
	node.Key = "node:" + key
	node.Class = "animal highlighted"
	objects = append(objects, node)
	r.overlay.Apply(objects)
	return &analysis.HoverResult{Key: key, Tooltip: node.Tooltip, Links: touching}, nil
}

// Unhover clears the highlight overlay
func (r *NetworkRenderer) Unhover() {
	r.hovered = ""
	r.overlay.Clear()
}

func init() {
	analysis.RegisterRenderer("network", NewNetworkRenderer)
}
