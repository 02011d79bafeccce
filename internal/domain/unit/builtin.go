package unit

import (
	"github.com/shopspring/decimal"
)

// Shared bound values for the built-in definitions.
var (
	boundZero       = decimal.Zero
	boundPlus200    = decimal.NewFromInt(200)
	boundMinus200   = decimal.NewFromInt(-200)
	factorHours     = decimal.NewFromInt(minutesPerHour)
	factorDays      = decimal.NewFromInt(minutesPerDay)
	factorWeeks     = decimal.NewFromInt(7 * minutesPerDay)
	factorMonths    = decimal.NewFromInt(30 * minutesPerDay)
	factorYears     = decimal.NewFromInt(365 * minutesPerDay)
	currencyDecimal = 2
)

// Builtin returns the stock catalog shipped with the application. Extra
// units from configuration are appended by the caller before NewCatalog.
//
// Percentage units cap at 200 so runaway ratios stay chartable; margin and
// error rate may run negative. Duration units normalize to minutes so they
// compare against time-of-day targets.
func Builtin() []Unit {
	return []Unit{
		percentUnit("percentage_pct", "Percentage (%)", true),
		percentUnit("completion_pct", "Completion (%)", false),
		percentUnit("success_rate_pct", "Success rate (%)", false),
		percentUnit("accuracy_pct", "Accuracy (%)", false),
		percentUnit("compliance_pct", "Compliance (%)", false),
		percentUnit("conversion_pct", "Conversion (%)", false),
		percentUnit("sla_pct", "SLA (%)", false),
		percentUnit("margin_pct", "Margin (%)", true),
		percentUnit("error_rate_pct", "Error rate (%)", true),

		currencyUnit("amount_lkr", "Amount (LKR)", false),
		currencyUnit("revenue", "Revenue", false),
		currencyUnit("cost", "Cost", false),
		currencyUnit("expense", "Expense", false),
		currencyUnit("profit", "Profit", true),
		currencyUnit("savings", "Savings", false),

		countUnit("qty", "Qty"),
		countUnit("units", "Units"),
		countUnit("pieces", "Pieces"),
		countUnit("orders", "Orders"),
		countUnit("count", "Count"),
		countUnit("score", "Score"),
		countUnit("tickets_resolved", "Tickets Resolved"),
		countUnit("customer_count", "Customer Count"),
		countUnit("leads", "Leads"),
		countUnit("tasks_completed", "Tasks Completed"),

		durationUnit("minutes", "Minutes", "min", decimal.Decimal{}),
		durationUnit("hours", "Hours", "hrs", factorHours),
		durationUnit("days", "Days", "days", factorDays),
		durationUnit("weeks", "Weeks", "weeks", factorWeeks),
		durationUnit("months", "Months", "months", factorMonths),
		durationUnit("years", "Years", "years", factorYears),

		{Key: "date", Label: "Date", Kind: KindDate},
		{Key: "time", Label: "Time", Kind: KindTime},

		measureUnit("kg", "Kg", "KG", 3),
		measureUnit("tonnes", "Tonnes", "TONNES", 3),
		measureUnit("litres", "Litres", "LITRES", 2),
		measureUnit("meters", "Meters", "METERS", 2),
		measureUnit("kwh", "Kwh", "KWH", 2),
		measureUnit("rpm", "Rpm", "RPM", 2),

		rateUnit("rate", "Rate"),
		rateUnit("index", "Index"),
		{
			Key: "units_per_hour", Label: "Units Per Hour", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 2, HelperHint: "units/hour",
		},
		{
			Key: "cycle_time", Label: "Cycle Time", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 2, HelperHint: "cycle minutes",
		},
		{
			Key: "lead_time", Label: "Lead Time", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 2, HelperHint: "lead minutes",
		},
		{
			Key: "response_time", Label: "Response Time", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 2, HelperHint: "response minutes",
		},
		{
			Key: "milestones", Label: "Milestones", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 1,
		},
		{
			Key: "stages", Label: "Stages", Kind: KindNumeric,
			MinValue: &boundZero, DecimalPrecision: 1,
		},
	}
}

// BuiltinCatalog builds the stock catalog. The definitions are static so
// construction cannot fail.
func BuiltinCatalog() *Catalog {
	c, err := NewCatalog(Builtin())
	if err != nil {
		panic(err)
	}
	return c
}

func percentUnit(key, label string, allowsNegative bool) Unit {
	u := Unit{
		Key:              key,
		Label:            label,
		Kind:             KindNumeric,
		AllowsNegative:   allowsNegative,
		DecimalPrecision: 1,
		DisplaySuffix:    "%",
		MaxValue:         &boundPlus200,
	}
	if allowsNegative {
		u.MinValue = &boundMinus200
	} else {
		u.MinValue = &boundZero
	}
	return u
}

func currencyUnit(key, label string, allowsNegative bool) Unit {
	u := Unit{
		Key:              key,
		Label:            label,
		Kind:             KindNumeric,
		AllowsNegative:   allowsNegative,
		DecimalPrecision: currencyDecimal,
		DisplayPrefix:    "LKR",
	}
	if !allowsNegative {
		u.MinValue = &boundZero
	}
	return u
}

func countUnit(key, label string) Unit {
	return Unit{
		Key:      key,
		Label:    label,
		Kind:     KindInteger,
		MinValue: &boundZero,
	}
}

func durationUnit(key, label, suffix string, factor decimal.Decimal) Unit {
	return Unit{
		Key:              key,
		Label:            label,
		Kind:             KindNumeric,
		ScalingFactor:    factor,
		MinValue:         &boundZero,
		DecimalPrecision: 1,
		DisplaySuffix:    suffix,
	}
}

func measureUnit(key, label, suffix string, decimals int) Unit {
	return Unit{
		Key:              key,
		Label:            label,
		Kind:             KindNumeric,
		MinValue:         &boundZero,
		DecimalPrecision: decimals,
		DisplaySuffix:    suffix,
	}
}

func rateUnit(key, label string) Unit {
	return Unit{
		Key:              key,
		Label:            label,
		Kind:             KindNumeric,
		AllowsNegative:   true,
		DecimalPrecision: 2,
	}
}
