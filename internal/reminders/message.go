package reminders

import (
	"fmt"
	"strconv"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	msgTitle = "Payment reminder"
	msgBody  = "%s: %v due on %s"
)

var texts = newCatalog()

// newCatalog builds the reminder texts. It panics on malformed entries,
// they are a programming error.
func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	entries := []struct {
		tag      language.Tag
		key, msg string
	}{
		{language.English, msgTitle, msgTitle},
		{language.English, msgBody, msgBody},
		{language.Spanish, msgTitle, "Recordatorio de pago"},
		{language.Spanish, msgBody, "%s: %v vence el %s"},
		{language.German, msgTitle, "Zahlungserinnerung"},
		{language.German, msgBody, "%s: %v fällig am %s"},
	}

	for _, e := range entries {
		if err := b.SetString(e.tag, e.key, e.msg); err != nil {
			panic(fmt.Sprintf("reminder text %q for %s: %v", e.key, e.tag, err))
		}
	}

	return b
}

// Formatter renders reminder texts in a language and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter creates a Formatter. An empty locale falls back to English,
// an empty currency to USD.
func NewFormatter(locale, currencyCode string) (Formatter, error) {
	tag := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return Formatter{}, err
		}
		tag = t
	}

	unit := currency.USD
	if currencyCode != "" {
		u, err := currency.ParseISO(currencyCode)
		if err != nil {
			return Formatter{}, err
		}
		unit = u
	}

	return Formatter{
		printer: message.NewPrinter(tag, message.Catalog(texts)),
		unit:    unit,
	}, nil
}

// DefaultFormatter formats in English and USD.
func DefaultFormatter() Formatter {
	return Formatter{
		printer: message.NewPrinter(language.English, message.Catalog(texts)),
		unit:    currency.USD,
	}
}

func (f Formatter) Title() string {
	return f.printer.Sprintf(msgTitle)
}

func (f Formatter) Body(conceptName string, amount decimal.Decimal, dueDate string) string {
	return f.printer.Sprintf(msgBody, conceptName, f.money(amount), dueDate)
}

// money renders the amount with the currency symbol, rounded to the
// currency's standard scale without going through float64.
func (f Formatter) money(amount decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	return f.printer.Sprintf("%v %s", currency.Symbol(f.unit), amount.StringFixed(int32(scale)))
}

// payload is handed back with the delivered notification.
func payload(c models.ReminderCandidate) map[string]string {
	return map[string]string{
		"expenseId": strconv.FormatUint(uint64(c.ExpenseID), 10),
		"conceptId": strconv.FormatUint(uint64(c.ConceptID), 10),
		"amount":    c.Amount.String(),
		"dueDate":   c.DueDate,
	}
}
