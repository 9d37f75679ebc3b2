// Package registry holds the in-memory mirror of the receiver's scene
// graph and resource table: every View and Resource the session has
// created, keyed by id, plus the content-keyed caches §3 specifies.
//
// Cross-references are plain uint32 ids, never pointers, so ownership
// cycles (a view referencing a resource referencing the view that bound
// it) cannot arise at the Go level (spec.md §9's "cyclic references"
// redesign note).
package registry

const (
	// NullAnimationID is the canonical "no animation, apply instantly" id.
	NullAnimationID uint32 = 0
	// RootStreamID is the reserved id of the root stream resource.
	RootStreamID uint32 = 1
	// RootViewID is the reserved id of the root view.
	RootViewID uint32 = 2
	// FirstApplicationID is the first id the registry ever hands out;
	// ids below it are reserved system ids (§3).
	FirstApplicationID uint32 = 2048
)

// Registry owns id allocation and storage for every View and Resource a
// session has created. It is not itself safe for concurrent use; the
// owning Session wraps it with its single mutex, per spec.md §5's
// permitted simplification of sharing the writer lock and registry lock.
type Registry struct {
	nextID    uint32
	views     map[uint32]*View
	resources map[uint32]*Resource

	colorCache map[uint32]uint32    // argb -> id
	ttfCache   map[string]uint32    // name -> id
	fontCache  map[FontKey]uint32   // (ttf,style,size,flags) -> id
	imageCache map[string]uint32    // name -> id
	animCache  map[AnimKey]uint32   // (durationMs,ease) -> id
}

// New returns a Registry pre-populated with the root view.
func New() *Registry {
	r := &Registry{
		nextID:     FirstApplicationID,
		views:      make(map[uint32]*View),
		resources:  make(map[uint32]*Resource),
		colorCache: make(map[uint32]uint32),
		ttfCache:   make(map[string]uint32),
		fontCache:  make(map[FontKey]uint32),
		imageCache: make(map[string]uint32),
		animCache:  make(map[AnimKey]uint32),
	}
	// Visible starts false: the receiver has no notion of the root
	// view's visibility until the session explicitly emits it at the
	// Handshaken->Running transition (spec.md §4.6), so the local
	// shadow must start in the state that makes that emission real
	// rather than eliding it as a no-op.
	r.views[RootViewID] = &View{
		ID:           RootViewID,
		ParentID:     0,
		IsRoot:       true,
		Visible:      false,
		Painting:     true,
		Transparency: 1,
		ScaleX:       1,
		ScaleY:       1,
	}
	return r
}

// AllocID returns the next monotonically increasing application id. Ids
// are never reused within a session, including ids of removed entities.
func (r *Registry) AllocID() uint32 {
	id := r.nextID
	r.nextID++
	return id
}

// View returns the view with the given id, if it exists.
func (r *Registry) View(id uint32) (*View, bool) {
	v, ok := r.views[id]
	return v, ok
}

// PutView stores a newly created view and links it to its parent.
func (r *Registry) PutView(v *View) {
	r.views[v.ID] = v
	if parent, ok := r.views[v.ParentID]; ok {
		parent.Children = append(parent.Children, v.ID)
	}
}

// RemoveView detaches a view from its parent and deletes it; the id is
// never reused (§3 view invariants).
func (r *Registry) RemoveView(id uint32) {
	v, ok := r.views[id]
	if !ok {
		return
	}
	if parent, ok := r.views[v.ParentID]; ok {
		parent.Children = removeID(parent.Children, id)
	}
	delete(r.views, id)
}

// Resource returns the resource with the given id, if it exists.
func (r *Registry) Resource(id uint32) (*Resource, bool) {
	res, ok := r.resources[id]
	return res, ok
}

// PutResource stores a newly created resource.
func (r *Registry) PutResource(res *Resource) {
	r.resources[res.ID] = res
}

// RemoveResource deletes a resource and evicts it from any content cache
// it may be present in.
func (r *Registry) RemoveResource(id uint32) {
	res, ok := r.resources[id]
	if !ok {
		return
	}
	switch res.Kind {
	case KindColor:
		delete(r.colorCache, res.Color)
	case KindTTF:
		delete(r.ttfCache, res.Name)
	case KindFont:
		delete(r.fontCache, res.FontKey)
	case KindImage:
		delete(r.imageCache, res.Name)
	case KindAnimation:
		delete(r.animCache, res.AnimKey)
	}
	delete(r.resources, id)
}

func removeID(ids []uint32, target uint32) []uint32 {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
