package calc

import "fmt"

// Operator is one calculator input.
type Operator uint8

const (
	Digit0 Operator = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Period
	Equals
	Add
	Subtract
	Multiply
	Divide
	Clear

	numOperators
)

var operatorLabels = [numOperators]string{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	".", "=", "+", "-", "*", "/", "C",
}

// Valid reports whether op is a defined operator.
func (op Operator) Valid() bool { return op < numOperators }

// IsDigit reports whether op is Digit0..Digit9.
func (op Operator) IsDigit() bool { return op <= Digit9 }

// IsBinary reports whether op is Add, Subtract, Multiply or Divide.
func (op Operator) IsBinary() bool { return op >= Add && op <= Divide }

// String returns the button label.
func (op Operator) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
	return operatorLabels[op]
}

// ParseOperator maps a button label back to its operator.
func ParseOperator(label string) (Operator, bool) {
	for i, l := range operatorLabels {
		if l == label {
			return Operator(i), true
		}
	}
	return 0, false
}

// Operators returns every defined operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, numOperators)
	for i := range ops {
		ops[i] = Operator(i)
	}
	return ops
}
