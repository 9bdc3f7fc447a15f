package component

import "github.com/jakecoffman/cp"

// Directions is a set of contact sides.
type Directions struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

func (d Directions) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// RigidBody holds the motion state the collision system reads and corrects.
type RigidBody struct {
	Velocity cp.Vector
	// Mass weights the momentum exchange between two pushable bodies. Values
	// <= 0 count as 1.
	Mass float64
	// Immovable bodies are never moved by separation.
	Immovable bool
	// Pushable bodies accept positional correction from other movable bodies.
	Pushable bool
	// Bounce is the restitution applied to the velocity blend, 0..1.
	Bounce float64
	// Friction is the share of an immovable carrier's motion handed to a body
	// resting on it.
	Friction     float64
	GravityScale float64
	// CustomSeparate skips positional correction for any pair involving this
	// body; contacts are still recorded.
	CustomSeparate bool

	// Delta is the displacement applied this tick.
	Delta cp.Vector
	// Embedded is set when a contact had no relative motion on an axis.
	Embedded bool
	Blocked  Directions
	Touching Directions
}

func NewRigidBody() *RigidBody {
	return &RigidBody{
		Mass:         1,
		Pushable:     true,
		Friction:     1,
		GravityScale: 1,
	}
}

func (b *RigidBody) EffectiveMass() float64 {
	if b == nil || b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

// ResetContacts clears the per-tick contact flags.
func (b *RigidBody) ResetContacts() {
	if b == nil {
		return
	}
	b.Embedded = false
	b.Blocked = Directions{}
	b.Touching = Directions{}
	b.Delta = cp.Vector{}
}

var RigidBodyComponent = NewComponent[RigidBody]()
