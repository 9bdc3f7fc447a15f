package system

import (
	"github.com/milk9111/collide/ecs"
	"github.com/milk9111/collide/ecs/component"
)

// ControlSystem drives controlled bodies from their Input. Jumps need ground
// contact from the previous physics tick.
type ControlSystem struct{}

func NewControlSystem() *ControlSystem { return &ControlSystem{} }

func (s *ControlSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.ControllerComponent.Kind(), component.InputComponent.Kind(), component.RigidBodyComponent.Kind(), func(_ ecs.Entity, ctrl *component.Controller, in *component.Input, rb *component.RigidBody) {
		rb.Velocity.X = in.MoveX * ctrl.MoveSpeed
		if in.MoveX < 0 {
			ctrl.Facing = -1
		} else if in.MoveX > 0 || ctrl.Facing == 0 {
			ctrl.Facing = 1
		}
		if in.JumpPressed && (rb.Touching.Down || rb.Blocked.Down) {
			rb.Velocity.Y = -ctrl.JumpSpeed
		}
	})
}
