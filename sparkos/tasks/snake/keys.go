package snake

import "toybox/hal"

// command is what a key press asks the snake task to do.
type command uint8

const (
	cmdNone command = iota
	cmdTurn
	cmdPause
	cmdRestart
	cmdExit
)

// commandForKey maps a key press to a task command. For cmdTurn the direction is returned too.
func commandForKey(ev hal.KeyEvent) (command, Dir) {
	switch ev.Code {
	case hal.KeyUp:
		return cmdTurn, DirUp
	case hal.KeyDown:
		return cmdTurn, DirDown
	case hal.KeyLeft:
		return cmdTurn, DirLeft
	case hal.KeyRight:
		return cmdTurn, DirRight
	case hal.KeyEscape:
		return cmdExit, 0
	}

	switch ev.Rune {
	case 'w', 'W':
		return cmdTurn, DirUp
	case 's', 'S':
		return cmdTurn, DirDown
	case 'a', 'A':
		return cmdTurn, DirLeft
	case 'd', 'D':
		return cmdTurn, DirRight
	case 'p', 'P', ' ':
		return cmdPause, 0
	case 'r', 'R':
		return cmdRestart, 0
	case 'q', 'Q':
		return cmdExit, 0
	}
	return cmdNone, 0
}
