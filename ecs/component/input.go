package component

// Input stores per-frame input state for an entity.
type Input struct {
	MoveX       float64
	JumpPressed bool
	FirePressed bool
}

var InputComponent = NewComponent[Input]()

// Controller turns Input into body motion.
type Controller struct {
	MoveSpeed float64
	JumpSpeed float64
	// Facing is -1 or 1, the direction of the last horizontal input.
	Facing float64
}

var ControllerComponent = NewComponent[Controller]()
