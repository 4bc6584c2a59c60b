// Package calc holds the calculator's state machine and display formatting.
//
// State is a value: every transition returns a new State and never fails.
// Arithmetic errors surface as sentinel display strings.
package calc

import "strings"

// Display sentinels. They are the only non-numeric values Display can hold.
const (
	ErrorDisplay        = "Error"
	DivideByZeroDisplay = "Can't divide by 0"
)

// Operator is a pending binary operation.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
)

// Valid reports whether op is one of the four arithmetic operators.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Symbol is the keypad label for op.
func (op Operator) Symbol() string {
	switch op {
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return string(op)
}

// Stage names the coarse position of a State in the input cycle.
type Stage string

const (
	StageEntering        Stage = "entering"
	StageOperatorPending Stage = "operator_pending"
	StageResulted        Stage = "resulted"
	StageErred           Stage = "erred"
)

// State is the whole calculator. Previous is empty when no binary
// operation is pending; Operator is OpNone exactly when Previous is empty.
type State struct {
	Display       string
	Previous      string
	Operator      Operator
	AwaitingEntry bool
}

// New returns the power-on state.
func New() State {
	return State{Display: "0"}
}

// Pending reports whether a left operand and operator are stored.
func (s State) Pending() bool {
	return s.Previous != "" && s.Operator != OpNone
}

// Erred reports whether Display holds an error sentinel.
func (s State) Erred() bool {
	return isSentinel(s.Display)
}

// Stage classifies s for logging and display decisions.
func (s State) Stage() Stage {
	switch {
	case s.Erred():
		return StageErred
	case s.AwaitingEntry && s.Pending():
		return StageOperatorPending
	case s.AwaitingEntry:
		return StageResulted
	default:
		return StageEntering
	}
}

func isSentinel(display string) bool {
	return display == ErrorDisplay || display == DivideByZeroDisplay
}

func hasDecimalPoint(display string) bool {
	return strings.Contains(display, ".")
}
