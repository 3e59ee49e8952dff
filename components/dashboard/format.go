package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const defaultLocale = "en"

// FormatCount renders n with the digit grouping of locale (5845 → "5,845" in English).
func FormatCount(locale string, n int64) string {
	return printerFor(locale).Sprintf("%d", n)
}

// FormatPercent renders a percentage: integral values drop decimals (78 → "78%"),
// other values keep at most two fraction digits.
func FormatPercent(locale string, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MetricsPlaceholder
	}
	p := printerFor(locale)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return p.Sprintf("%d%%", int64(v))
	}
	return p.Sprintf("%v%%", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatLastSync renders the KPI sub-line for a pipeline timestamp relative to now.
func FormatLastSync(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Last sync: " + MetricsPlaceholder
	}
	generated, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "Last sync: " + raw
	}
	if now.IsZero() {
		now = time.Now()
	}
	return "Last sync: " + humanize.RelTime(generated, now, "ago", "from now")
}

func printerFor(locale string) *message.Printer {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil || normalizeLocale(locale) == "" {
		tag = language.Make(defaultLocale)
	}
	return message.NewPrinter(tag)
}

// MetricsSummary holds the display strings of the live Overview KPIs.
type MetricsSummary struct {
	TotalResponses string `json:"total_responses"`
	CompletionRate string `json:"completion_rate"`
	LastSync       string `json:"last_sync"`
}

// SummarizeMetrics formats snapshot for display. Missing numbers render as
// MetricsPlaceholder.
func SummarizeMetrics(snapshot MetricsSnapshot, locale string, now time.Time) MetricsSummary {
	summary := MetricsSummary{
		TotalResponses: MetricsPlaceholder,
		CompletionRate: MetricsPlaceholder,
		LastSync:       FormatLastSync(snapshot.GeneratedAt, now),
	}
	if snapshot.RowsTotal != nil {
		summary.TotalResponses = FormatCount(locale, *snapshot.RowsTotal)
	}
	if snapshot.CompletionRatePct != nil {
		summary.CompletionRate = FormatPercent(locale, *snapshot.CompletionRatePct)
	}
	return summary
}
