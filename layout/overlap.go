package layout

import (
	"math"
	"math/rand/v2"
	"time"

	"wordweb/geometry"
)

// Resolver pushes a candidate point away from occupied points until it keeps a minimum
// separation from all of them, or until it runs out of attempts. Exhaustion is not an
// error: the last candidate is returned with converged=false.
type Resolver struct {
	minDistance float64
	maxAttempts int
	initialStep float64
	stepGrowth  float64
	rng         *rand.Rand
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMinDistance sets the required separation between points.
func WithMinDistance(d float64) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.minDistance = d
		}
	}
}

// WithMaxAttempts sets how many push iterations are tried before giving up.
func WithMaxAttempts(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithSeed makes the random escape direction reproducible.
func WithSeed(seed uint64) ResolverOption {
	return func(r *Resolver) {
		r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewResolver creates a Resolver with the default separation of 190 and 30 attempts.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		minDistance: DefaultMinDistance,
		maxAttempts: DefaultMaxAttempts,
		initialStep: DefaultInitialStep,
		stepGrowth:  DefaultStepGrowth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return r
}

// MinDistance returns the separation the resolver tries to achieve.
func (r *Resolver) MinDistance() float64 {
	return r.minDistance
}

// Resolve returns a point near p that is at least MinDistance from every occupied point.
func (r *Resolver) Resolve(p geometry.Point, occupied []geometry.Point) (geometry.Point, bool) {
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		force, crowded := r.repulsion(p, occupied)
		if !crowded {
			return p, true
		}

		// Escalate the push each round so dense clusters can still be escaped
		step := r.initialStep + r.stepGrowth*float64(attempt)

		if force.IsZero() {
			// Sitting exactly on an occupant, or forces cancel out: pick any direction
			theta := r.rng.Float64() * 2 * math.Pi
			p = geometry.Polar(p, step, theta)
			continue
		}
		p = p.Add(force.Unit().Scale(step))
	}

	_, crowded := r.repulsion(p, occupied)
	return p, !crowded
}

// repulsion sums the unit vectors pointing away from every occupant closer than the
// minimum distance. crowded reports whether any such occupant exists.
func (r *Resolver) repulsion(p geometry.Point, occupied []geometry.Point) (force geometry.Point, crowded bool) {
	for _, o := range occupied {
		d := geometry.Distance(p, o)
		if d >= r.minDistance {
			continue
		}
		crowded = true
		if d > 0 {
			force = force.Add(p.Sub(o).Unit())
		}
	}
	return force, crowded
}
