package engine

// Command is one of the seven logical inputs the session understands.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
	CmdHardDrop
	CmdTogglePause
	CmdRestart
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdSoftDrop:
		return "soft_drop"
	case CmdRotate:
		return "rotate"
	case CmdHardDrop:
		return "hard_drop"
	case CmdTogglePause:
		return "toggle_pause"
	case CmdRestart:
		return "restart"
	default:
		return "none"
	}
}

// Apply runs a command against s and returns the resulting state.
// Commands that do not apply in the current phase return s unchanged.
func Apply(s State, c Command) State {
	switch c {
	case CmdMoveLeft:
		return s.Move(-1, 0)
	case CmdMoveRight:
		return s.Move(1, 0)
	case CmdSoftDrop:
		return s.Move(0, 1)
	case CmdRotate:
		return s.Rotate()
	case CmdHardDrop:
		return s.HardDrop()
	case CmdTogglePause:
		return s.TogglePause()
	case CmdRestart:
		return s.Restart()
	default:
		return s
	}
}
