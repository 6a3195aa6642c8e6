package flexview

// NodeID addresses an element within one layout pass. IDs are assigned in
// pre-order, so the root is always 0 and a parent precedes its children.
type NodeID int32

// NoNode is the parent of the root.
const NoNode NodeID = -1

// arena indexes an element tree for a single pass. The tree itself carries
// no parent references; the parent slice is rebuilt once per traversal.
type arena struct {
	nodes  []*Element
	parent []NodeID
	index  map[*Element]NodeID
	byID   map[string]NodeID
}

func newArena(root *Element) *arena {
	a := &arena{
		nodes:  make([]*Element, 0, 64),
		parent: make([]NodeID, 0, 64),
		index:  make(map[*Element]NodeID, 64),
		byID:   make(map[string]NodeID),
	}
	if root != nil {
		a.add(root, NoNode)
	}
	return a
}

func (a *arena) add(el *Element, parent NodeID) {
	if _, seen := a.index[el]; seen {
		// the same element reachable twice would make the tree a graph
		return
	}
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, el)
	a.parent = append(a.parent, parent)
	a.index[el] = id
	if el.ID != "" {
		if _, dup := a.byID[el.ID]; !dup {
			a.byID[el.ID] = id
		}
	}
	for _, c := range el.Children {
		if c != nil {
			a.add(c, id)
		}
	}
}

func (a *arena) len() int { return len(a.nodes) }

func (a *arena) id(el *Element) (NodeID, bool) {
	if a == nil {
		return NoNode, false
	}
	id, ok := a.index[el]
	return id, ok
}

func (a *arena) element(id NodeID) *Element {
	if a == nil || id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

func (a *arena) parentOf(id NodeID) NodeID {
	if a == nil || id < 0 || int(id) >= len(a.parent) {
		return NoNode
	}
	return a.parent[id]
}

func (a *arena) lookup(elementID string) (NodeID, bool) {
	if a == nil {
		return NoNode, false
	}
	id, ok := a.byID[elementID]
	return id, ok
}

// ancestors calls fn for each ancestor of id, nearest first, until fn
// returns false.
func (a *arena) ancestors(id NodeID, fn func(NodeID) bool) {
	for p := a.parentOf(id); p != NoNode; p = a.parentOf(p) {
		if !fn(p) {
			return
		}
	}
}

// sizeKey identifies a measurement within one pass.
type sizeKey struct {
	node NodeID
	w, h int
}

// sizeCache memoises measurements for the current pass only.
type sizeCache struct {
	arena *arena
	sizes map[sizeKey]Size
}

func (c *sizeCache) reset(a *arena) {
	c.arena = a
	if c.sizes == nil {
		c.sizes = make(map[sizeKey]Size, 128)
		return
	}
	clear(c.sizes)
}

func (c *sizeCache) get(el *Element, w, h int) (Size, bool) {
	id, ok := c.arena.id(el)
	if !ok {
		return Size{}, false
	}
	s, ok := c.sizes[sizeKey{node: id, w: w, h: h}]
	return s, ok
}

func (c *sizeCache) put(el *Element, w, h int, s Size) {
	id, ok := c.arena.id(el)
	if !ok {
		return
	}
	c.sizes[sizeKey{node: id, w: w, h: h}] = s
}

// Lookup implements SizeLookup.
func (c *sizeCache) Lookup(el *Element, availableWidth, availableHeight int) (Size, bool) {
	return c.get(el, availableWidth, availableHeight)
}
