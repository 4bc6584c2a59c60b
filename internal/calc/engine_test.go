package calc

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
)

// run applies a press script to s. Digits and '.' enter numbers, + - * /
// choose operators, '=' calculates, 'D' deletes and 'C' clears.
func run(s State, script string) State {
	for _, r := range script {
		switch r {
		case '.':
			s = s.InputDecimal()
		case '+', '-', '*', '/':
			s = s.PerformOperation(Operator(string(r)))
		case '=':
			s = s.Calculate()
		case 'D':
			s = s.DeleteLast()
		case 'C':
			s = s.Clear()
		case ' ':
		default:
			s = s.InputDigit(r)
		}
	}
	return s
}

func TestNewState(t *testing.T) {
	s := New()
	if s != (State{Display: "0"}) {
		t.Fatalf("New() = %+v, want display 0 and nothing pending", s)
	}
	if s.Stage() != StageEntering {
		t.Fatalf("stage = %q, want %q", s.Stage(), StageEntering)
	}
}

func TestInputDigit(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"first digit replaces zero", "7", "7"},
		{"digits concatenate", "123", "123"},
		{"zeros collapse", "0007", "7"},
		{"zero after decimal kept", "0.05", "0.05"},
		{"new entry after operator", "12+3", "3"},
		{"new entry after result", "2+2=9", "9"},
		{"new entry after error", "5/0=4", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(New(), tt.script)
			if got.Display != tt.want {
				t.Fatalf("display = %q, want %q", got.Display, tt.want)
			}
		})
	}
}

func TestInputDigitIgnoresNonDigits(t *testing.T) {
	s := run(New(), "12")
	for _, r := range []rune{'a', '+', '٣', -1} {
		if got := s.InputDigit(r); got != s {
			t.Fatalf("InputDigit(%q) changed state to %+v", r, got)
		}
	}
}

func TestInputDigitKeepsSignOnNegativeZero(t *testing.T) {
	s := State{Display: "-0"}
	if got := s.InputDigit('4').Display; got != "-4" {
		t.Fatalf("display = %q, want %q", got, "-4")
	}
}

func TestInputDecimal(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"from zero", ".", "0."},
		{"after digits", "12.", "12."},
		{"second point ignored", "12..", "12."},
		{"point inside fraction ignored", "1.5.2", "1.52"},
		{"starts new entry after operator", "9*.", "0."},
		{"starts new entry after result", "1+1=.", "0."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(New(), tt.script)
			if got.Display != tt.want {
				t.Fatalf("display = %q, want %q", got.Display, tt.want)
			}
			if n := strings.Count(got.Display, "."); n > 1 {
				t.Fatalf("display %q has %d decimal points", got.Display, n)
			}
		})
	}
}

func TestDeleteLast(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{"single digit floors at zero", "7", "0"},
		{"zero stays zero", "0", "0"},
		{"removes last digit", "123", "12"},
		{"removes decimal point", "12.", "12"},
		{"generic error clears", ErrorDisplay, "0"},
		{"divide error clears", DivideByZeroDisplay, "0"},
		{"negative sign never left alone", "-3", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := State{Display: tt.display}.DeleteLast()
			if got.Display != tt.want {
				t.Fatalf("DeleteLast(%q) = %q, want %q", tt.display, got.Display, tt.want)
			}
		})
	}
}

func TestDeleteLastReachesZeroAndStays(t *testing.T) {
	s := run(New(), "9876.54")
	for i := 0; i < 20; i++ {
		s = s.DeleteLast()
		if s.Display == "" {
			t.Fatal("display became empty")
		}
	}
	if s.Display != "0" {
		t.Fatalf("display = %q, want %q", s.Display, "0")
	}
}

func TestClearFromEveryStage(t *testing.T) {
	scripts := []string{"", "12.5", "12+", "12+3", "12+3=", "5/0=", "5/0+", "1+2*"}
	for _, script := range scripts {
		got := run(New(), script).Clear()
		if got != New() {
			t.Fatalf("Clear after %q = %+v, want %+v", script, got, New())
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"simple addition", "5+3=", "8"},
		{"subtraction to negative", "3-5=", "-2"},
		{"multiplication", "12*12=", "144"},
		{"fractional division", "1/4=", "0.25"},
		{"chain then equals", "5+3+2=", "10"},
		{"chain mixed operators", "2*3-1=", "5"},
		{"binary64 artifacts kept", ".1+.2=", "0.30000000000000004"},
		{"large result without exponent", "1000000000*1000000000*1000=", "1000000000000000000000"},
		{"negative zero normalized", "0-0=", "0"},
		{"result reused as operand", "2+3=*4=", "20"},
		{"equals without operator", "42=", "42"},
		{"trailing decimal operand", "12.+1=", "13"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(New(), tt.script)
			if got.Display != tt.want {
				t.Fatalf("%s: display = %q, want %q", tt.script, got.Display, tt.want)
			}
		})
	}
}

func TestChainShowsIntermediateResult(t *testing.T) {
	s := run(New(), "5+3+")
	if s.Display != "8" {
		t.Fatalf("display after second operator = %q, want %q", s.Display, "8")
	}
	if s.Previous != "8" || s.Operator != OpAdd {
		t.Fatalf("pending = %q %q, want %q %q", s.Previous, s.Operator, "8", OpAdd)
	}
	if s.Stage() != StageOperatorPending {
		t.Fatalf("stage = %q, want %q", s.Stage(), StageOperatorPending)
	}
	s = run(s, "2=")
	if s.Display != "10" {
		t.Fatalf("display after equals = %q, want %q", s.Display, "10")
	}
}

func TestRepeatedOperatorEvaluatesAgainstDisplay(t *testing.T) {
	// A second operator with no new operand still chains: 5 + 5.
	s := run(New(), "5+-")
	if s.Display != "10" {
		t.Fatalf("display = %q, want %q", s.Display, "10")
	}
	if s.Operator != OpSubtract {
		t.Fatalf("operator = %q, want %q", s.Operator, OpSubtract)
	}
}

func TestDivideByZeroOnEquals(t *testing.T) {
	s := run(New(), "5/0=")
	want := State{Display: DivideByZeroDisplay, AwaitingEntry: true}
	if s != want {
		t.Fatalf("state = %+v, want %+v", s, want)
	}
	if s.Stage() != StageErred {
		t.Fatalf("stage = %q, want %q", s.Stage(), StageErred)
	}
}

func TestDivideByZeroWhileChaining(t *testing.T) {
	s := run(New(), "5/0*")
	want := State{Display: ErrorDisplay, AwaitingEntry: true}
	if s != want {
		t.Fatalf("state = %+v, want %+v", s, want)
	}
	if got := run(s, "3=").Display; got != "3" {
		t.Fatalf("display after recovery = %q, want %q", got, "3")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if ErrorDisplay == DivideByZeroDisplay {
		t.Fatal("error sentinels must differ")
	}
}

func TestOperatorOnErrorIsIgnored(t *testing.T) {
	s := run(New(), "5/0=")
	if got := s.PerformOperation(OpAdd); got != s {
		t.Fatalf("PerformOperation on error = %+v, want unchanged %+v", got, s)
	}
}

func TestOverflowShowsGenericError(t *testing.T) {
	big := "1" + strings.Repeat("0", 300)
	s := State{Display: big, Previous: big, Operator: OpMultiply}
	got := s.Calculate()
	if got.Display != ErrorDisplay || got.Pending() {
		t.Fatalf("overflow state = %+v, want generic error with nothing pending", got)
	}
}

func TestCalculateNoopWithoutPending(t *testing.T) {
	s := run(New(), "12.5")
	if got := s.Calculate(); got != s {
		t.Fatalf("Calculate() = %+v, want unchanged %+v", got, s)
	}
}

func TestInvalidOperatorIsIgnored(t *testing.T) {
	s := run(New(), "12")
	if got := s.PerformOperation("%"); got != s {
		t.Fatalf("PerformOperation(%%) = %+v, want unchanged", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		a, b    float64
		op      Operator
		want    float64
		wantErr error
	}{
		{6, 3, OpDivide, 2, nil},
		{5, 0, OpDivide, 0, ErrDivideByZero},
		{0, 0, OpDivide, 0, ErrDivideByZero},
		{2, 3, OpAdd, 5, nil},
		{2, 3, OpSubtract, -1, nil},
		{2, 3, OpMultiply, 6, nil},
		{math.MaxFloat64, 2, OpMultiply, 0, ErrNonFinite},
		{1, 1, Operator("^"), 0, ErrUnknownOperator},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.a, tt.b, tt.op)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("Evaluate(%v, %v, %q) err = %v, want %v", tt.a, tt.b, tt.op, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("Evaluate(%v, %v, %q) = %v, want %v", tt.a, tt.b, tt.op, got, tt.want)
		}
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	const alphabet = "0123456789.+-*/=DC"
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		s := New()
		for step := 0; step < 40; step++ {
			r := rune(alphabet[rng.IntN(len(alphabet))])
			s = run(s, string(r))

			if s.Display == "" || s.Display == "-" {
				t.Fatalf("run %d step %d: invalid display %q", i, step, s.Display)
			}
			if strings.Count(s.Display, ".") > 1 {
				t.Fatalf("run %d step %d: display %q has more than one point", i, step, s.Display)
			}
			if (s.Previous == "") != (s.Operator == OpNone) {
				t.Fatalf("run %d step %d: previous %q with operator %q", i, step, s.Previous, s.Operator)
			}
			if !s.Erred() && len(s.Display) > 1 && s.Display[0] == '0' && s.Display[1] != '.' {
				t.Fatalf("run %d step %d: redundant leading zero in %q", i, step, s.Display)
			}
		}
	}
}
