package hme

import (
	"github.com/tivo-community/hme-go/internal/proto"
	"github.com/tivo-community/hme-go/internal/registry"
)

// Animation is a binding target for an animated mutation: either the
// canonical instantaneous null animation (id 0), an explicit Animation
// resource, or a freshly allocated-or-cached one built from a duration
// in seconds (spec.md §4.4's "animation binding" rule).
type Animation struct {
	id uint32
}

// Instant is the canonical "apply immediately" animation: id 0,
// duration 0.
func Instant() Animation { return Animation{id: registry.NullAnimationID} }

// AnimationFor targets an explicit, already-created Animation resource.
func AnimationFor(r *Resource) Animation { return Animation{id: r.id} }

// AnimationSeconds returns an Animation that plays out over the given
// duration with ease 0, reusing a cached Animation resource for the
// same (duration, ease) pair if one exists. Per spec.md §9's open
// question, ease is always sent as a float directly in [-1.0, 1.0]; no
// historical ease*100 packing is performed anywhere in this package.
func (s *Session) AnimationSeconds(seconds float64) (Animation, error) {
	return s.animation(int32(seconds*1000), 0)
}

// AnimationSecondsEased is AnimationSeconds with an explicit ease in
// [-1.0, 1.0].
func (s *Session) AnimationSecondsEased(seconds float64, ease float32) (Animation, error) {
	return s.animation(int32(seconds*1000), ease)
}

func (s *Session) animation(durationMS int32, ease float32) (Animation, error) {
	res, err := s.newAnimation(durationMS, ease)
	if err != nil {
		return Animation{}, err
	}
	return Animation{id: res.id}, nil
}

func (s *Session) newAnimation(durationMS int32, ease float32) (*Resource, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	key := registry.AnimKey{DurationMS: durationMS, Ease: ease}
	if id, ok := s.reg.LookupAnimation(key); ok {
		if res, ok := s.reg.Resource(id); ok {
			res.Refs++
		}
		s.mu.Unlock()
		return newResourceHandle(s, id), nil
	}

	id := s.reg.AllocID()
	s.out = proto.AppendAddAnim(s.out, id, durationMS, ease)
	s.reg.PutResource(&registry.Resource{ID: id, Kind: registry.KindAnimation, AnimKey: key, Refs: 1})
	s.reg.CacheAnimation(key, id)
	return s.finishCreate(id)
}
