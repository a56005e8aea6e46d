package scene

import (
	"sort"
	"sync"
)

// Op counts the operations a surface received
type Op struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
	Cleared int `json:"cleared"`
}

// Canvas is an in-memory Surface
// It is safe for concurrent use so the draw loop and readers can share it
type Canvas struct {
	mu     sync.RWMutex
	layers map[string]map[string]Object
	ops    Op
}

// NewCanvas creates an empty canvas
func NewCanvas() *Canvas {
	return &Canvas{layers: make(map[string]map[string]Object)}
}

// Create adds an object; an existing object with the same key is replaced
func (c *Canvas) Create(obj Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	layer, ok := c.layers[obj.Layer]
	if !ok {
		layer = make(map[string]Object)
		c.layers[obj.Layer] = layer
	}
	layer[obj.Key] = obj
	c.ops.Created++
}

// Update replaces an object
func (c *Canvas) Update(obj Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	layer, ok := c.layers[obj.Layer]
	if !ok {
		layer = make(map[string]Object)
		c.layers[obj.Layer] = layer
	}
	layer[obj.Key] = obj
	c.ops.Updated++
}

// Remove deletes an object; unknown keys are ignored
func (c *Canvas) Remove(layer, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	objects, ok := c.layers[layer]
	if !ok {
		return
	}
	if _, ok := objects[key]; !ok {
		return
	}
	delete(objects, key)
	if len(objects) == 0 {
		delete(c.layers, layer)
	}
	c.ops.Removed++
}

// Clear removes everything
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.layers = make(map[string]map[string]Object)
	c.ops.Cleared++
}

// Empty reports whether the canvas holds no object
func (c *Canvas) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.layers) == 0
}

// Get returns one object
func (c *Canvas) Get(layer, key string) (Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	obj, ok := c.layers[layer][key]
	return obj, ok
}

// Objects returns the objects of a layer ordered by key
func (c *Canvas) Objects(layer string) []Object {
	c.mu.RLock()
	defer c.mu.RUnlock()

	objects := make([]Object, 0, len(c.layers[layer]))
	for _, obj := range c.layers[layer] {
		objects = append(objects, obj)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects
}

// Layers returns the non-empty layer names in order
func (c *Canvas) Layers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.layers))
	for name := range c.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of objects over all layers
func (c *Canvas) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, objects := range c.layers {
		n += len(objects)
	}
	return n
}

// Ops returns the operation counters
func (c *Canvas) Ops() Op {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ops
}

// Scene is a serializable copy of a canvas
type Scene struct {
	Layers map[string][]Object `json:"layers"`
	Count  int                 `json:"count"`
}

// Export copies the current content of the canvas
func (c *Canvas) Export() Scene {
	s := Scene{Layers: make(map[string][]Object)}
	for _, name := range c.Layers() {
		objects := c.Objects(name)
		s.Layers[name] = objects
		s.Count += len(objects)
	}
	return s
}
