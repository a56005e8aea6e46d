// Package viz draws frames of a movement dataset as network or glyph scenes.
package viz

import (
	"fmt"
	"strconv"

	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
)

// Layers shared by the renderers
const (
	LayerLinks     = "links"
	LayerNodes     = "nodes"
	LayerEntities  = "entities"
	LayerMouseover = "mouseover"
)

// palette resolves the fill colors of one frame
type palette struct {
	params  models.FrameParams
	feature FeatureScale
	colored bool
}

func newPalette(ds *dataset.Dataset, params models.FrameParams) palette {
	p := palette{params: params}
	if !params.Colored() {
		return p
	}
	extent, ok := ds.FeatureExtent(params.Feature)
	if !ok {
		return p
	}
	p.feature = NewFeatureScale(extent.Lo, extent.Hi)
	p.colored = true
	return p
}

// featureColor returns the feature color of an entity, or fallback when no
// feature is active or the entity lacks it
func (p palette) featureColor(e models.Entity, fallback string) string {
	if !p.colored {
		return fallback
	}
	v, ok := e.Feature(p.params.Feature)
	if !ok {
		return fallback
	}
	return p.feature.Color(v)
}

// recordColor returns the feature color of a single animal
func (p palette) recordColor(rec *models.Record, fallback string) string {
	return p.featureColor(models.Entity{Record: rec}, fallback)
}

// moverTooltip names the cluster label of an animal at the active granularity
func moverTooltip(rec *models.Record, granularity int) string {
	label := "none"
	if l, ok := rec.Label(granularity); ok {
		label = strconv.Itoa(l)
	}
	return "The mover belongs to the cluster: " + label
}

// clusterTooltip names the population of a cluster
func clusterTooltip(c *models.Cluster) string {
	return fmt.Sprintf("The cluster consists of: %d movers", c.Num)
}

// linkKey identifies a link object; n disambiguates repeated pairs
func linkKey(source, target string, n int) string {
	if n == 0 {
		return "link:" + source + "->" + target
	}
	return fmt.Sprintf("link:%s->%s#%d", source, target, n)
}

// clusterKey identifies a cluster object by label and granularity
func clusterKey(c *models.Cluster) string {
	return fmt.Sprintf("cluster:%d:%d", c.Granularity, c.Label)
}

// entityKey identifies the top-level object of an entity
func entityKey(e models.Entity) string {
	if e.IsCluster() {
		return clusterKey(e.Cluster)
	}
	return e.Record.AnimalID
}
