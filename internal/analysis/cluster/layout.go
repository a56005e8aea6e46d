package cluster

import (
	"github.com/jengzang/movetank-go/internal/analysis/relations"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/spatial"
)

// Node is a member of a cluster placed in the cluster's local glyph space
type Node struct {
	Record *models.Record
	Offset spatial.Point // Relative to the cluster centre
}

// Layout places the members of a cluster inside a circle of the given radius
// Every member keeps its bearing from the centroid; distances are scaled so
// the farthest member lands on the radius
func Layout(c *models.Cluster, radius float64) []Node {
	points := make([]spatial.Point, len(c.Movers))
	for i := range c.Movers {
		points[i] = c.Movers[i].Position()
	}
	maxDist := spatial.MaxDistance(c.Centroid, points)

	nodes := make([]Node, len(c.Movers))
	for i := range c.Movers {
		nodes[i] = Node{Record: &c.Movers[i]}
		if maxDist == 0 {
			continue
		}
		bearing := spatial.BearingBetween(c.Centroid, points[i])
		scaled := radius * spatial.Distance(c.Centroid, points[i]) / maxDist
		nodes[i].Offset = spatial.LocalOffset(bearing, scaled)
	}
	return nodes
}

// InnerLinks returns the links between members of a cluster in local glyph space
func InnerLinks(nodes []Node, f relations.Filter) []models.Link {
	ids := make([]string, len(nodes))
	local := make(models.PositionIndex, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Record.AnimalID
		local[n.Record.AnimalID] = n.Offset
	}

	var links []models.Link
	for _, n := range nodes {
		links = append(links, relations.LinksFrom(n.Record, n.Record.AnimalID, n.Offset, ids, local, f, nil)...)
	}
	return links
}
