package service

import "fmt"

// Amounts are stored as integer fils (1/100 AED); details render them the
// way the dashboard shows them.
func formatAmount(amount int64) string {
	return fmt.Sprintf("AED %.2f", float64(amount)/100)
}
