package httpadapter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"leadflare/internal/core/domain"
)

const notAvailable = "N/A"

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// projectionDisplay holds a projection rendered for the budget screen.
type projectionDisplay struct {
	CostPerResult string `json:"cost_per_result"`
	DailyResults  string `json:"daily_results"`
	Reach         string `json:"reach"`
	WeeklySpend   string `json:"weekly_spend"`
	MonthlySpend  string `json:"monthly_spend"`
}

type displayFormatter struct {
	p      *message.Printer
	symbol string
}

func newDisplayFormatter(currency string) displayFormatter {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return displayFormatter{p: message.NewPrinter(language.English), symbol: symbol}
}

func (f displayFormatter) money(v float64) string {
	return f.symbol + f.p.Sprintf("%.2f", v)
}

func (f displayFormatter) moneyRange(r domain.FloatRange) string {
	return f.money(r.Min) + " - " + f.money(r.Max)
}

func (f displayFormatter) intRange(r domain.IntRange) string {
	return f.p.Sprintf("%d - %d", r.Min, r.Max)
}

func (f displayFormatter) projection(p domain.Projection) projectionDisplay {
	if !p.Available {
		return projectionDisplay{
			CostPerResult: notAvailable,
			DailyResults:  notAvailable,
			Reach:         notAvailable,
			WeeklySpend:   notAvailable,
			MonthlySpend:  notAvailable,
		}
	}
	return projectionDisplay{
		CostPerResult: f.moneyRange(p.CostRange),
		DailyResults:  f.intRange(p.ResultsRange),
		Reach:         f.intRange(p.Reach),
		WeeklySpend:   f.money(p.WeeklySpend),
		MonthlySpend:  f.money(p.MonthlySpend),
	}
}
