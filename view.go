package hme

import (
	"fmt"

	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
)

// View is a handle onto one node of the scene graph: a rectangle that
// may own a resource and own child views (spec.md §3). All mutation
// methods apply spec.md §4.4's state elision: a mutation that would
// leave the mirrored field unchanged is suppressed rather than sent.
type View struct {
	s  *Session
	id uint32
}

func newView(s *Session, id uint32) *View {
	return &View{s: s, id: id}
}

// ID returns the view's resource-space id.
func (v *View) ID() uint32 { return v.id }

func (v *View) get() (*registry.View, bool) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.reg.View(v.id)
}

// AddChild allocates, registers, and emits ADD for a new child view.
func (v *View) AddChild(x, y, w, h int32, visible bool) (*View, error) {
	v.s.mu.Lock()
	if err := v.s.checkOpenLocked(); err != nil {
		v.s.mu.Unlock()
		return nil, err
	}
	id := v.s.reg.AllocID()
	v.s.reg.PutView(&registry.View{
		ID: id, ParentID: v.id,
		X: x, Y: y, W: w, H: h,
		Visible: visible, Painting: true,
		ScaleX: 1, ScaleY: 1, Transparency: 1,
	})
	v.s.out = proto.AppendAdd(v.s.out, id, v.id, x, y, w, h, visible)
	flushNow := v.s.flushEveryMutation
	v.s.mu.Unlock()

	if flushNow {
		if err := v.s.flush(); err != nil {
			return nil, err
		}
	}
	return newView(v.s, id), nil
}

// SetBounds sets (x, y, w, h), animated per anim.
func (v *View) SetBounds(x, y, w, h int32, anim Animation) error {
	cur, ok := v.get()
	if ok && cur.X == x && cur.Y == y && cur.W == w && cur.H == h {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetBounds(buf, v.id, x, y, w, h, anim.id)
	}, func(cv *registry.View) { cv.X, cv.Y, cv.W, cv.H = x, y, w, h }, v.id)
}

// SetScale sets (xscale, yscale), animated per anim.
func (v *View) SetScale(xscale, yscale float32, anim Animation) error {
	cur, ok := v.get()
	if ok && cur.ScaleX == xscale && cur.ScaleY == yscale {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetScale(buf, v.id, xscale, yscale, anim.id)
	}, func(cv *registry.View) { cv.ScaleX, cv.ScaleY = xscale, yscale }, v.id)
}

// SetTranslation sets (xt, yt), animated per anim.
func (v *View) SetTranslation(xt, yt float32, anim Animation) error {
	cur, ok := v.get()
	if ok && cur.TransX == xt && cur.TransY == yt {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetTranslation(buf, v.id, xt, yt, anim.id)
	}, func(cv *registry.View) { cv.TransX, cv.TransY = xt, yt }, v.id)
}

// SetTransparency sets alpha, animated per anim.
func (v *View) SetTransparency(alpha float32, anim Animation) error {
	cur, ok := v.get()
	if ok && cur.Transparency == alpha {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetTransparency(buf, v.id, alpha, anim.id)
	}, func(cv *registry.View) { cv.Transparency = alpha }, v.id)
}

// SetVisible sets the visible flag, animated per anim.
func (v *View) SetVisible(visible bool, anim Animation) error {
	cur, ok := v.get()
	if ok && cur.Visible == visible {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetVisible(buf, v.id, visible, anim.id)
	}, func(cv *registry.View) { cv.Visible = visible }, v.id)
}

// SetPainting sets the painting flag (never animated, spec.md §4.4).
func (v *View) SetPainting(painting bool) error {
	cur, ok := v.get()
	if ok && cur.Painting == painting {
		return nil
	}
	return v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetPainting(buf, v.id, painting)
	}, func(cv *registry.View) { cv.Painting = painting }, v.id)
}

// SetResource binds resource to this view with the given flags. flags'
// meaning is resource-kind specific (e.g. RSRC_HALIGN_* / RSRC_VALIGN_*
// for Text, RSRC_IMAGE_* for Image). Rebinding releases whatever
// resource the view held previously, so an unnamed resource dropped by
// its last view is implicitly removed per spec.md §3.
func (v *View) SetResource(resource *Resource, flags int32) error {
	if resource == nil {
		return fmt.Errorf("hme: resource cannot be nil")
	}
	cur, ok := v.get()
	if ok && cur.HasResource && cur.ResourceID == resource.id && cur.ResourceFlags == flags {
		return nil
	}
	var previous *Resource
	if ok && cur.HasResource && cur.ResourceID != resource.id {
		previous = &Resource{s: v.s, id: cur.ResourceID}
	}
	err := v.s.emitFlush(func(buf []byte) []byte {
		return proto.AppendSetResource(buf, v.id, resource.id, flags)
	}, func(cv *registry.View) {
		cv.HasResource, cv.ResourceID, cv.ResourceFlags = true, resource.id, flags
	}, v.id)
	if err != nil {
		return err
	}
	resource.retain()
	if previous != nil {
		return previous.Release()
	}
	return nil
}

// Remove detaches and removes this view, animated per anim. The view
// id must not be referenced again (spec.md §3).
func (v *View) Remove(anim Animation) error {
	v.s.mu.Lock()
	if err := v.s.checkOpenLocked(); err != nil {
		v.s.mu.Unlock()
		return err
	}
	v.s.out = proto.AppendRemoveView(v.s.out, v.id, anim.id)
	v.s.reg.RemoveView(v.id)
	flushNow := v.s.flushEveryMutation
	v.s.mu.Unlock()
	if flushNow {
		return v.s.flush()
	}
	return nil
}

// setSizeFromResolution updates the root view's (w, h) after a
// RESOLUTION_INFO negotiation (spec.md §4.5), keeping its current
// position and emitting an instantaneous SET_BOUNDS.
func (v *View) setSizeFromResolution(r Resolution) {
	cur, ok := v.get()
	x, y := int32(0), int32(0)
	if ok {
		x, y = cur.X, cur.Y
	}
	_ = v.SetBounds(x, y, r.Width, r.Height, Instant())
}

// emitFlush appends a command, applies the corresponding local mutation
// under the same lock, and flushes if WithFlushOnEveryMutation is set.
func (s *Session) emitFlush(build func([]byte) []byte, mutate func(*registry.View), viewID uint32) error {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.out = build(s.out)
	if cv, ok := s.reg.View(viewID); ok {
		mutate(cv)
	}
	flushNow := s.flushEveryMutation
	s.mu.Unlock()
	if flushNow {
		return s.flush()
	}
	return nil
}
