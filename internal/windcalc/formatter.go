package windcalc

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with the given number of decimals and thousand
// separators on the integer part. Rounding is the correctly rounded decimal
// of the binary value, as strconv does.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return formatted
	}

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")
	grouped := sign + groupDigits(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	return grouped
}

// groupDigits inserts a comma every three digits from the right. It works on
// the digit string, so values beyond the int64 range are grouped too.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + (len(digits)-1)/3)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPower scales a kW value to unit and formats it with the unit's
// precision and suffix, e.g. "1,234 kW" or "1.234 MW".
func FormatPower(valueKW float64, unit PowerUnit) (string, error) {
	v, err := ScalePower(valueKW, unit)
	if err != nil {
		return "", err
	}
	return FormatFloat(v, unit.Decimals()) + " " + string(unit), nil
}

// FormatEnergy scales a MWh/year value to unit and formats it with the unit's
// precision and suffix, e.g. "17,870 MWh/year".
func FormatEnergy(valueMWh float64, unit EnergyUnit) (string, error) {
	v, err := ScaleEnergy(valueMWh, unit)
	if err != nil {
		return "", err
	}
	return FormatFloat(v, unit.Decimals()) + " " + string(unit), nil
}
