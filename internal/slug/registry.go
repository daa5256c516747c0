package slug

import "strconv"

// Collision records a slug that had to be suffixed to stay unique.
type Collision struct {
	Source   string `json:"source"`
	Wanted   string `json:"wanted"`
	Assigned string `json:"assigned"`
}

// Registry hands out unique slugs for a single build. The first claimant of a
// slug keeps it; later claimants receive "-2", "-3" and so on.
type Registry struct {
	taken      map[string]struct{}
	collisions []Collision
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{taken: make(map[string]struct{})}
}

// Claim derives the slug for source and makes it unique within the registry.
func (r *Registry) Claim(source string) string {
	want := Make(source)
	if _, used := r.taken[want]; !used {
		r.taken[want] = struct{}{}
		return want
	}
	for n := 2; ; n++ {
		candidate := want + "-" + strconv.Itoa(n)
		if _, used := r.taken[candidate]; used {
			continue
		}
		r.taken[candidate] = struct{}{}
		r.collisions = append(r.collisions, Collision{Source: source, Wanted: want, Assigned: candidate})
		return candidate
	}
}

// Collisions lists every suffixed assignment in claim order.
func (r *Registry) Collisions() []Collision {
	out := make([]Collision, len(r.collisions))
	copy(out, r.collisions)
	return out
}
