// Package scene is the rendering substrate the renderers draw onto.
//
// A surface holds keyed objects grouped in layers. Every object is placed by
// a translation and carries primitives in its local coordinate space.
package scene

// Primitive kinds
const (
	KindCircle = "circle"
	KindLine   = "line"
	KindArc    = "arc"
	KindArrow  = "arrow"
)

// Primitive is one drawable shape of an object in local coordinates
type Primitive struct {
	Kind   string  `json:"kind"`
	Class  string  `json:"class,omitempty"`
	X1     float64 `json:"x1"` // Circle centre, line or arrow start
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2,omitempty"` // Line or arrow end
	Y2     float64 `json:"y2,omitempty"`
	R      float64 `json:"r,omitempty"`     // Circle radius, arc inner radius
	Outer  float64 `json:"outer,omitempty"` // Arc outer radius
	Start  float64 `json:"start,omitempty"` // Arc start angle in radians
	End    float64 `json:"end,omitempty"`   // Arc end angle in radians
	Rotate float64 `json:"rotate,omitempty"`
	Fill   string  `json:"fill,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
}

// Circle returns a circle primitive
func Circle(class string, cx, cy, r float64, fill, stroke string) Primitive {
	return Primitive{Kind: KindCircle, Class: class, X1: cx, Y1: cy, R: r, Fill: fill, Stroke: stroke}
}

// Line returns a line primitive
func Line(class string, x1, y1, x2, y2 float64, stroke string) Primitive {
	return Primitive{Kind: KindLine, Class: class, X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: stroke}
}

// Arc returns an annular sector between start and end
func Arc(class string, inner, outer, start, end float64, fill string) Primitive {
	return Primitive{Kind: KindArc, Class: class, R: inner, Outer: outer, Start: start, End: end, Fill: fill}
}

// Arrow returns a direction marker of the given length rotated by degrees
func Arrow(class string, length, degrees float64, stroke string) Primitive {
	return Primitive{Kind: KindArrow, Class: class, Y2: -length, Rotate: degrees, Stroke: stroke}
}

// Object is one keyed visual object
type Object struct {
	Key      string      `json:"key"`
	Layer    string      `json:"layer"`
	Class    string      `json:"class,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Tooltip  string      `json:"tooltip,omitempty"`
	Exiting  bool        `json:"exiting,omitempty"`
	Children []Primitive `json:"children"`
}

// Surface is the keyed create/update/remove capability of a drawing target
type Surface interface {
	Create(obj Object)
	Update(obj Object)
	Remove(layer, key string)
	// Clear removes every object of every layer
	Clear()
	// Empty reports whether no object is present
	Empty() bool
}
