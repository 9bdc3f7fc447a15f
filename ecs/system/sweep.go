package system

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
	"github.com/milk9111/collide/geom"
)

type sweepHit struct {
	other  ecs.Entity
	result geom.RaycastResult
	distSq float64
}

// sweep moves a continuous collider along its velocity for this tick,
// stopping at the first impact and spending what is left of the displacement
// according to the collider's response. The pair it hits is marked visited so
// the discrete pass that follows does not resolve it again.
func (cs *CollisionSystem) sweep(w *ecs.World, e ecs.Entity, candidates []ecs.Entity, dt float64, visited map[pairKey]struct{}, stats *Stats) {
	self, ok := bodyOf(w, e)
	if !ok || self.rb == nil || self.rb.Immovable {
		return
	}

	d := self.rb.Velocity.Mult(dt)
	self.rb.Delta = cp.Vector{}
	if d.X == 0 && d.Y == 0 {
		return
	}
	stats.Sweeps++

	hit, ok := cs.firstHit(w, self, d, candidates, 0)
	if !ok {
		self.move(d)
		self.rb.Delta = d
		return
	}
	stats.SweepHits++
	visited[makePairKey(e, hit.other)] = struct{}{}

	travelled := d.Mult(hit.result.T)
	self.move(travelled)
	if other, ok := bodyOf(w, hit.other); ok {
		self.collider.AddCollision(uint64(hit.other), hit.result.Normal)
		other.collider.AddCollision(uint64(e), hit.result.Normal.Neg())
	}

	rest, vel := respond(self.collider.Response, hit.result.Normal, d.Mult(1-hit.result.T), self.rb.Velocity)
	self.rb.Velocity = vel
	if rest.X != 0 || rest.Y != 0 {
		// the rest of the motion is swept once more and clamped, with no
		// second response
		if again, ok := cs.firstHit(w, self, rest, candidates, hit.other); ok {
			rest = rest.Mult(again.result.T)
		}
		self.move(rest)
		travelled = travelled.Add(rest)
	}
	self.rb.Delta = travelled
}

// firstHit sweeps self along d against every solid candidate and returns the
// earliest impact whose pair passes ProcessCallback. skip excludes the
// candidate already hit this tick; ties on T prefer the nearer candidate,
// then an axis-aligned normal.
func (cs *CollisionSystem) firstHit(w *ecs.World, self body, d cp.Vector, candidates []ecs.Entity, skip ecs.Entity) (sweepHit, bool) {
	shape := self.shape()
	hits := make([]sweepHit, 0)
	for _, other := range candidates {
		if other == skip || !CanCollide(w, self.entity, other) {
			continue
		}
		b, ok := bodyOf(w, other)
		if !ok || b.collider.Mode == component.CollisionModeOverlap {
			continue
		}
		target := b.shape()
		res := geom.Raycast(shape, d, target)
		if !res.Occurred() {
			continue
		}
		hits = append(hits, sweepHit{
			other:  other,
			result: res,
			distSq: shape.Center.DistanceSq(target.Center),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		hi, hj := hits[i], hits[j]
		if hi.result.T != hj.result.T {
			return hi.result.T < hj.result.T
		}
		if hi.distSq != hj.distSq {
			return hi.distSq < hj.distSq
		}
		return axisAligned(hi.result.Normal) && !axisAligned(hj.result.Normal)
	})

	for _, h := range hits {
		if !cs.ProcessCallback(w, self.entity, h.other) {
			continue
		}
		if !ecs.IsAlive(w, self.entity) {
			return sweepHit{}, false
		}
		return h, true
	}
	return sweepHit{}, false
}

func axisAligned(n cp.Vector) bool {
	return n.X == 0 || n.Y == 0
}

// respond turns the displacement left after an impact, and the velocity,
// into what the collider keeps. n is the surface normal of the target.
func respond(r component.CollisionResponse, n, rest, vel cp.Vector) (cp.Vector, cp.Vector) {
	switch r {
	case component.ResponseSlide:
		return removeInto(rest, n), removeInto(vel, n)
	case component.ResponseBounce:
		return reflect(rest, n), reflect(vel, n)
	case component.ResponsePush:
		return redirect(rest, n), redirect(vel, n)
	case component.ResponseStop:
		return cp.Vector{}, cp.Vector{}
	default:
		panic("collision: unknown collision response " + r.String())
	}
}

// removeInto drops the part of v heading into the surface.
func removeInto(v, n cp.Vector) cp.Vector {
	if into := v.Dot(n); into < 0 {
		return v.Sub(n.Mult(into))
	}
	return v
}

func reflect(v, n cp.Vector) cp.Vector {
	if into := v.Dot(n); into < 0 {
		return v.Sub(n.Mult(2 * into))
	}
	return v
}

// redirect keeps v's full length but turns it along the surface, towards
// the side it was already heading.
func redirect(v, n cp.Vector) cp.Vector {
	if v.Dot(n) >= 0 {
		return v
	}
	tangent := n.Perp()
	if v.Dot(tangent) < 0 {
		tangent = tangent.Neg()
	}
	return tangent.Mult(v.Length())
}
