package calc

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrDivideByZero     = errors.New("division by zero")
	ErrNonFinite        = errors.New("result is not finite")
	ErrUnknownOperator  = errors.New("unknown operator")
	errOperandNotNumber = errors.New("operand is not a number")
)

// InputDigit appends d to the number being entered, or starts a new number
// when the state is awaiting entry. A lone zero is replaced, not extended.
func (s State) InputDigit(d rune) State {
	if d < '0' || d > '9' {
		return s
	}
	digit := string(d)
	if s.AwaitingEntry || s.Erred() {
		s.Display = digit
		s.AwaitingEntry = false
		return s
	}
	switch s.Display {
	case "0":
		s.Display = digit
	case "-0":
		s.Display = "-" + digit
	default:
		s.Display += digit
	}
	return s
}

// InputDecimal adds a decimal point. A second point in the same number is
// ignored.
func (s State) InputDecimal() State {
	if s.AwaitingEntry || s.Erred() {
		s.Display = "0."
		s.AwaitingEntry = false
		return s
	}
	if !hasDecimalPoint(s.Display) {
		s.Display += "."
	}
	return s
}

// DeleteLast removes the last character of the display. It floors at "0"
// and wipes error sentinels entirely.
func (s State) DeleteLast() State {
	if len(s.Display) <= 1 || s.Erred() {
		s.Display = "0"
		return s
	}
	s.Display = s.Display[:len(s.Display)-1]
	if s.Display == "-" {
		s.Display = "0"
	}
	return s
}

// Clear returns the power-on state.
func (s State) Clear() State {
	return New()
}

// PerformOperation stores op as the pending operator. If an operator was
// already pending it is evaluated first and its result shown, so "5 + 3 +"
// displays 8. A division by zero at this point shows ErrorDisplay and drops
// both the pending operation and op.
func (s State) PerformOperation(op Operator) State {
	if !op.Valid() || s.Erred() {
		return s
	}
	if s.Previous == "" {
		s.Previous = s.Display
	} else if s.Operator != OpNone {
		result, err := s.evaluatePending()
		if err != nil {
			return errorState(ErrorDisplay)
		}
		s.Display = result
		s.Previous = result
	}
	s.Operator = op
	s.AwaitingEntry = true
	return s
}

// Calculate evaluates the pending operation and shows the result. It is a
// no-op when nothing is pending.
func (s State) Calculate() State {
	if !s.Pending() {
		return s
	}
	result, err := s.evaluatePending()
	switch {
	case errors.Is(err, ErrDivideByZero):
		return errorState(DivideByZeroDisplay)
	case err != nil:
		return errorState(ErrorDisplay)
	}
	return State{Display: result, AwaitingEntry: true}
}

// Evaluate applies op to a and b with binary64 arithmetic.
func Evaluate(a, b float64, op Operator) (float64, error) {
	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		result = a / b
	default:
		return 0, ErrUnknownOperator
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrNonFinite
	}
	return result, nil
}

// evaluatePending runs Previous Operator Display and returns the result
// already formatted for the display.
func (s State) evaluatePending() (string, error) {
	a, err := parseOperand(s.Previous)
	if err != nil {
		return "", err
	}
	b, err := parseOperand(s.Display)
	if err != nil {
		return "", err
	}
	result, err := Evaluate(a, b, s.Operator)
	if err != nil {
		return "", err
	}
	return formatResult(result), nil
}

func parseOperand(raw string) (float64, error) {
	if isSentinel(raw) {
		return 0, errOperandNotNumber
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errOperandNotNumber
	}
	return v, nil
}

// formatResult renders v as the shortest decimal that parses back to v,
// never in exponent form.
func formatResult(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func errorState(display string) State {
	return State{Display: display, AwaitingEntry: true}
}
