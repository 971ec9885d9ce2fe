package calc

import "toybox/hal"

// OperatorForKey maps a key press to a calculator input.
func OperatorForKey(ev hal.KeyEvent) (Operator, bool) {
	switch ev.Code {
	case hal.KeyEnter:
		return Equals, true
	case hal.KeyBackspace, hal.KeyDelete:
		return Clear, true
	}

	switch r := ev.Rune; {
	case r >= '0' && r <= '9':
		return Digit0 + Operator(r-'0'), true
	case r == '.' || r == ',':
		return Period, true
	case r == '=':
		return Equals, true
	case r == '+':
		return Add, true
	case r == '-':
		return Subtract, true
	case r == '*':
		return Multiply, true
	case r == '/':
		return Divide, true
	case r == 'c' || r == 'C' || r == ' ':
		return Clear, true
	}
	return 0, false
}

// isExitKey reports whether ev asks to close the calculator.
func isExitKey(ev hal.KeyEvent) bool {
	return ev.Code == hal.KeyEscape
}
