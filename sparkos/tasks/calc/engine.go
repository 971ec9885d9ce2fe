package calc

import (
	"fmt"
	"math/big"
)

// ErrorText is what the display shows while the error flag is set.
const ErrorText = "ERROR"

// Display is a read-only view of the calculator output.
type Display struct {
	value *big.Int
	err   bool
}

// Err reports whether the engine is in the error state.
func (d Display) Err() bool { return d.err }

// Value returns a copy of the displayed integer. It is zero while Err is true.
func (d Display) Value() *big.Int {
	if d.err || d.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.value)
}

// String renders the display: the integer in base 10, or ErrorText.
func (d Display) String() string {
	if d.err {
		return ErrorText
	}
	if d.value == nil {
		return "0"
	}
	return d.value.String()
}

// pendingOp is the operator awaiting its right-hand side. pendingEquals marks
// that the last action was a completed computation.
type pendingOp uint8

const (
	pendingNone pendingOp = iota
	pendingAdd
	pendingSubtract
	pendingMultiply
	pendingDivide
	pendingEquals
)

func pendingFor(op Operator) pendingOp {
	switch op {
	case Add:
		return pendingAdd
	case Subtract:
		return pendingSubtract
	case Multiply:
		return pendingMultiply
	case Divide:
		return pendingDivide
	}
	return pendingNone
}

// Engine is the four-function integer calculator state machine.
//
// It is not safe for concurrent use; one event source drives one engine.
type Engine struct {
	output  big.Int
	stored  big.Int
	pending pendingOp
	err     bool

	subs   map[int]func(Display)
	nextID int
}

// NewEngine returns an engine in the cleared state.
func NewEngine() *Engine {
	return &Engine{}
}

// Display returns the current output.
func (e *Engine) Display() Display {
	return Display{value: new(big.Int).Set(&e.output), err: e.err}
}

// Subscribe registers fn to be called after every committed transition.
// The returned function removes the subscription.
func (e *Engine) Subscribe(fn func(Display)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	if e.subs == nil {
		e.subs = make(map[int]func(Display))
	}
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

// Apply feeds one input into the state machine.
//
// Apply panics if op is not a defined Operator: that is a caller bug, not user input.
func (e *Engine) Apply(op Operator) {
	if !op.Valid() {
		panic(fmt.Sprintf("calc: invalid operator %d", uint8(op)))
	}

	switch {
	case op == Clear:
		e.reset()

	case e.err:
		return

	case op.IsDigit():
		if e.pending == pendingEquals {
			e.reset()
		}
		e.output.Mul(&e.output, big.NewInt(10))
		e.output.Add(&e.output, big.NewInt(int64(op-Digit0)))

	case op == Period:
		// Decimal input is not supported; the key is accepted and ignored.

	case op == Equals:
		e.compute()

	case op.IsBinary():
		e.stored.Set(&e.output)
		e.output.SetInt64(0)
		e.pending = pendingFor(op)
	}

	e.notify()
}

func (e *Engine) compute() {
	switch e.pending {
	case pendingAdd:
		e.output.Add(&e.stored, &e.output)
	case pendingSubtract:
		e.output.Sub(&e.stored, &e.output)
	case pendingMultiply:
		e.output.Mul(&e.stored, &e.output)
	case pendingDivide:
		if e.output.Sign() == 0 {
			e.err = true
			return
		}
		e.output.Quo(&e.stored, &e.output)
	default:
		return
	}
	e.pending = pendingEquals
}

func (e *Engine) reset() {
	e.output.SetInt64(0)
	e.stored.SetInt64(0)
	e.pending = pendingNone
	e.err = false
}

func (e *Engine) notify() {
	if len(e.subs) == 0 {
		return
	}
	d := e.Display()
	for _, fn := range e.subs {
		fn(d)
	}
}
