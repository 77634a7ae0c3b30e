package tool

import (
	"testing"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

func TestCalculateIntegerOperations(t *testing.T) {
	t.Parallel()

	c := NewCalculator()
	tests := []struct {
		name string
		data contractx.CalculationData
		want string
	}{
		{"addition", contractx.CalculationData{Num1: 5, Operator: "+", Num2: 3}, "8"},
		{"subtraction", contractx.CalculationData{Num1: 5, Operator: "-", Num2: 9}, "-4"},
		{"multiplication", contractx.CalculationData{Num1: 10, Operator: "*", Num2: 5}, "50"},
		{"even division", contractx.CalculationData{Num1: 10, Operator: "/", Num2: 2}, "5"},
		{"fractional division", contractx.CalculationData{Num1: 10, Operator: "/", Num2: 4}, "2.5"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Calculate(tt.data); got != tt.want {
				t.Fatalf("Calculate(%+v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	t.Parallel()

	got := NewCalculator().Calculate(contractx.CalculationData{Num1: 7, Operator: "/", Num2: 0})
	if got != "Error: Division by zero is not allowed." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestCalculateInvalidOperator(t *testing.T) {
	t.Parallel()

	got := NewCalculator().Calculate(contractx.CalculationData{Num1: 1, Operator: "^", Num2: 2})
	if got != "Error: Invalid operator for calculation." {
		t.Fatalf("unexpected reply: %q", got)
	}
}
