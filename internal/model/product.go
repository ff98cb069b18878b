package model

// Product is an assembled model: a root group and an ID index over its parts.
type Product struct {
	Root  *Group
	index map[int]*Part
	order []int
	next  int
}

// NewProduct returns an empty product whose root group carries name.
func NewProduct(name string) *Product {
	return &Product{Root: NewGroup(name), index: make(map[int]*Part), next: 1}
}

// Name returns the root group's name.
func (pr *Product) Name() string { return pr.Root.Name }

// Attach adds p to group g (which must belong to this product) and assigns it the
// next part ID.
func (pr *Product) Attach(g *Group, p *Part) *Part {
	p.ID = pr.next
	pr.next++
	g.AddPart(p)
	pr.index[p.ID] = p
	pr.order = append(pr.order, p.ID)
	return p
}

// Parts returns the attached parts in build order.
func (pr *Product) Parts() []*Part {
	out := make([]*Part, 0, len(pr.order))
	for _, id := range pr.order {
		if p, ok := pr.index[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of attached parts.
func (pr *Product) Len() int { return len(pr.index) }

// Lookup returns the part with id if it is still attached.
func (pr *Product) Lookup(id int) (*Part, bool) {
	p, ok := pr.index[id]
	return p, ok
}

// PartByName returns the first attached part named name.
func (pr *Product) PartByName(name string) (*Part, bool) {
	var found *Part
	pr.Walk(func(p *Part) bool {
		if p.Name == name {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// Remove detaches the part with id from the hierarchy. It reports whether a part was removed.
func (pr *Product) Remove(id int) bool {
	p, ok := pr.index[id]
	if !ok {
		return false
	}
	delete(pr.index, id)
	if p.parent != nil {
		p.parent.removePart(p)
	}
	return true
}

// Walk visits every part of the hierarchy depth-first.
func (pr *Product) Walk(fn func(*Part) bool) {
	pr.Root.Walk(fn)
}

// Bounds returns the world-space bounding box of all parts.
func (pr *Product) Bounds() Box3 {
	box := emptyBox()
	pr.Walk(func(p *Part) bool {
		box = box.Union(p.WorldBounds())
		return true
	})
	return box
}
