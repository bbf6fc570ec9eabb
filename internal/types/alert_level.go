package types

import "github.com/shopspring/decimal"

// AlertLevel classifies how much of a monthly budget has been spent.
type AlertLevel string

const (
	AlertNone   AlertLevel = "NONE"
	AlertGreen  AlertLevel = "GREEN"
	AlertYellow AlertLevel = "YELLOW"
	AlertRed    AlertLevel = "RED"
)

var (
	alertThresholdRed    = decimal.NewFromInt(100)
	alertThresholdYellow = decimal.NewFromInt(80)
)

// AlertLevelFor returns the alert level for a usage percentage.
func AlertLevelFor(usagePercentage decimal.Decimal) AlertLevel {
	if usagePercentage.GreaterThanOrEqual(alertThresholdRed) {
		return AlertRed
	}

	if usagePercentage.GreaterThanOrEqual(alertThresholdYellow) {
		return AlertYellow
	}

	return AlertGreen
}
