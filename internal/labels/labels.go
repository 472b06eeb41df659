// Package labels holds the UI strings for every supported language and
// formats numbers for display in the chosen locale.
package labels

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Supported is the list of language codes with a label table, default first.
var Supported = []string{"en", "th"}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Thai})

// Match picks a supported language. An explicit choice (a ?lang= value or a
// stored preference) wins over the Accept-Language header; fallback is used
// when neither matches.
func Match(explicit, acceptLanguage, fallback string) string {
	if code := strings.ToLower(strings.TrimSpace(explicit)); isSupported(code) {
		return code
	}
	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Supported[idx]
			}
		}
	}
	if isSupported(fallback) {
		return fallback
	}
	return Supported[0]
}

func isSupported(code string) bool {
	for _, s := range Supported {
		if s == code {
			return true
		}
	}
	return false
}

// Labels translates keys and formats values for one language.
type Labels struct {
	Lang     string
	Currency string
	table    map[string]string
	printer  *message.Printer
}

// For returns the labels of lang, falling back to English.
func For(lang, currency string) *Labels {
	if !isSupported(lang) {
		lang = Supported[0]
	}
	return &Labels{
		Lang:     lang,
		Currency: currency,
		table:    tables[lang],
		printer:  message.NewPrinter(language.MustParse(lang)),
	}
}

// T returns the label for key. Missing keys fall back to English, then to
// the key itself.
func (l *Labels) T(key string) string {
	if v, ok := l.table[key]; ok {
		return v
	}
	if v, ok := tables["en"][key]; ok {
		return v
	}
	return key
}

// Money formats an amount with grouping and two decimals, without currency.
func (l *Labels) Money(d decimal.Decimal) string {
	return l.printer.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// MoneyWithCurrency appends the configured currency code.
func (l *Labels) MoneyWithCurrency(d decimal.Decimal) string {
	return l.Money(d) + " " + l.Currency
}

// Calories formats a whole number of kilocalories with grouping.
func (l *Labels) Calories(n int) string {
	return l.printer.Sprintf("%v", number.Decimal(n)) + " kcal"
}

// Int formats n with grouping.
func (l *Labels) Int(n int) string {
	return l.printer.Sprintf("%v", number.Decimal(n))
}

// Percent renders a 0..1 ratio as a whole percentage.
func (l *Labels) Percent(r float64) string {
	return l.printer.Sprintf("%v", number.Percent(r, number.Scale(0)))
}
