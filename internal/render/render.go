// Package render turns a calculation result into display lines.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Simplici0/laborcalc/internal/api"
)

// Block is one titled group of result lines.
type Block struct {
	Title string
	Lines []string
}

// Blocks returns the result panel for r, or nil when there is no result.
func Blocks(r *api.Result) []Block {
	if r == nil {
		return nil
	}
	w := r.HumanWages
	rec := r.WageRecommendations
	return []Block{
		{
			Title: "Human Wages",
			Lines: []string{
				"Base Pay: " + Money(w.BasePay),
				"Health & Welfare: " + OptionalMoney(w.HealthWelfare),
				"Vacation Pay: " + OptionalMoney(w.VacationPay),
				"Holiday Pay: " + OptionalMoney(w.HolidayPay),
				"Total: " + Money(w.TotalCompensation),
			},
		},
		{
			Title: "AI Costs",
			Lines: []string{
				"Total: " + Money(r.AICosts),
			},
		},
		{
			Title: "Recommendations",
			Lines: []string{
				"Action: " + rec.Action,
				"Adjustment: " + Percent(rec.AdjustmentPercentage),
				"Reason: " + rec.Reason,
			},
		},
	}
}

// Text renders the blocks as indented plain text.
func Text(r *api.Result) string {
	var b strings.Builder
	for i, block := range Blocks(r) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(block.Title)
		b.WriteByte('\n')
		for _, line := range block.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Money formats a dollar amount with two decimals.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// OptionalMoney formats an amount the service may omit; missing reads as zero.
func OptionalMoney(v *float64) string {
	if v == nil {
		return Money(0)
	}
	return Money(*v)
}

// Percent prints the shortest form of v followed by a percent sign.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
