package system

import (
	"math"

	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// PatrolSystem keeps patrolling bodies moving between their bounds. It runs
// before physics so the reversed velocity is integrated the same tick.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem { return &PatrolSystem{} }

func (s *PatrolSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.PatrolComponent.Kind(), component.RigidBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Patrol, rb *component.RigidBody, tr *component.Transform) {
		speed := math.Abs(p.Speed)
		switch {
		case tr.Position.X <= p.MinX:
			rb.Velocity.X = speed
		case tr.Position.X >= p.MaxX:
			rb.Velocity.X = -speed
		case rb.Velocity.X == 0:
			rb.Velocity.X = speed
		}
	})
}
