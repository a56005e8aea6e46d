package analysis

import (
	"github.com/jengzang/movetank-go/internal/scene"
)

// Diff holds the disjoint key sets of one reconciliation
type Diff struct {
	Enter  []string `json:"enter"`
	Update []string `json:"update"`
	Exit   []string `json:"exit"`
}

// Empty reports whether nothing changed membership
func (d Diff) Empty() bool {
	return len(d.Enter) == 0 && len(d.Exit) == 0
}

// KeyedDiff splits next against prev into entering, updated and exiting keys
// Enter and Update keep the order of next; Exit keeps the order of prevOrder
func KeyedDiff(prevOrder []string, next []string) Diff {
	prev := make(map[string]struct{}, len(prevOrder))
	for _, k := range prevOrder {
		prev[k] = struct{}{}
	}

	var d Diff
	seen := make(map[string]struct{}, len(next))
	for _, k := range next {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := prev[k]; ok {
			d.Update = append(d.Update, k)
		} else {
			d.Enter = append(d.Enter, k)
		}
	}
	for _, k := range prevOrder {
		if _, ok := seen[k]; !ok {
			d.Exit = append(d.Exit, k)
		}
	}
	return d
}

// Reconciler keeps one layer of a surface in sync with a desired object set
// With FadeFrames > 0 an exiting object stays for that many further frames,
// restyled with ExitFill; a key that comes back meanwhile is updated in place
type Reconciler struct {
	Surface    scene.Surface
	Layer      string
	FadeFrames int
	ExitFill   string

	order  []string
	live   map[string]scene.Object
	fading map[string]int // Remaining frames per fading key
}

// NewReconciler creates a reconciler for one layer
func NewReconciler(surface scene.Surface, layer string, fadeFrames int, exitFill string) *Reconciler {
	return &Reconciler{
		Surface:    surface,
		Layer:      layer,
		FadeFrames: fadeFrames,
		ExitFill:   exitFill,
		live:       make(map[string]scene.Object),
		fading:     make(map[string]int),
	}
}

// Apply reconciles the layer to objects and returns the membership change
func (r *Reconciler) Apply(objects []scene.Object) Diff {
	next := make([]string, 0, len(objects))
	byKey := make(map[string]scene.Object, len(objects))
	for _, obj := range objects {
		obj.Layer = r.Layer
		if _, dup := byKey[obj.Key]; !dup {
			next = append(next, obj.Key)
		}
		byKey[obj.Key] = obj
	}

	prev := make([]string, 0, len(r.order)+len(r.fading))
	prev = append(prev, r.order...)
	for k := range r.fading {
		prev = append(prev, k)
	}
	all := KeyedDiff(prev, next)

	// tick the fades started in earlier frames
	for k, left := range r.fading {
		if _, back := byKey[k]; back {
			continue
		}
		if left <= 1 {
			r.Surface.Remove(r.Layer, k)
			delete(r.fading, k)
			continue
		}
		r.fading[k] = left - 1
	}

	d := Diff{Enter: all.Enter}
	for _, k := range all.Enter {
		r.Surface.Create(byKey[k])
	}
	for _, k := range all.Update {
		if _, revived := r.fading[k]; revived {
			delete(r.fading, k)
		}
		r.Surface.Update(byKey[k])
		d.Update = append(d.Update, k)
	}
	for _, k := range r.order {
		if _, kept := byKey[k]; kept {
			continue
		}
		d.Exit = append(d.Exit, k)
		if r.FadeFrames <= 0 {
			r.Surface.Remove(r.Layer, k)
			continue
		}
		r.Surface.Update(r.exiting(r.live[k]))
		r.fading[k] = r.FadeFrames
	}

	r.order = next
	r.live = byKey
	return d
}

// exiting restyles an object for its fade out
func (r *Reconciler) exiting(obj scene.Object) scene.Object {
	obj.Exiting = true
	children := make([]scene.Primitive, len(obj.Children))
	for i, p := range obj.Children {
		if p.Fill != "" {
			p.Fill = r.ExitFill
		}
		if p.Stroke != "" {
			p.Stroke = r.ExitFill
		}
		children[i] = p
	}
	obj.Children = children
	return obj
}

// Clear removes every live and fading object of the layer
func (r *Reconciler) Clear() {
	for _, k := range r.order {
		r.Surface.Remove(r.Layer, k)
	}
	for k := range r.fading {
		r.Surface.Remove(r.Layer, k)
	}
	r.order = nil
	r.live = make(map[string]scene.Object)
	r.fading = make(map[string]int)
}

// Keys returns the live keys in desired order
func (r *Reconciler) Keys() []string {
	return append([]string(nil), r.order...)
}

// Get returns a live object
func (r *Reconciler) Get(key string) (scene.Object, bool) {
	obj, ok := r.live[key]
	return obj, ok
}

// Fading reports whether a key is in its exit fade
func (r *Reconciler) Fading(key string) bool {
	_, ok := r.fading[key]
	return ok
}
