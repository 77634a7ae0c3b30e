package tool

import (
	"strconv"

	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Calculator applies one binary integer operation and renders the result as
// reply text. Failures are part of the reply, never Go errors.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Calculate(data contractx.CalculationData) string {
	switch data.Operator {
	case "+":
		return strconv.Itoa(data.Num1 + data.Num2)
	case "-":
		return strconv.Itoa(data.Num1 - data.Num2)
	case "*":
		return strconv.Itoa(data.Num1 * data.Num2)
	case "/":
		if data.Num2 == 0 {
			return "Error: Division by zero is not allowed."
		}
		return strconv.FormatFloat(float64(data.Num1)/float64(data.Num2), 'g', -1, 64)
	default:
		return "Error: Invalid operator for calculation."
	}
}
