package calc

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// GroupSeparator separates digit groups in the integer part of a formatted
// number.
const GroupSeparator = ","

// FormatNumber inserts thousands separators into the integer part of raw and
// leaves any fractional part untouched. Sentinels and anything that does not
// parse as a number are returned as-is. Removing GroupSeparator from the
// result always gives back raw.
func FormatNumber(raw string) string {
	if isSentinel(raw) {
		return raw
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil && !isRangeError(err) {
		return raw
	}
	intPart, fracPart, hasFrac := strings.Cut(raw, ".")
	grouped := groupInteger(intPart)
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// PendingExpression renders the stored operand and operator, e.g. "1,200 ×".
// It is empty when no operation is pending.
func PendingExpression(s State) string {
	if !s.Pending() {
		return ""
	}
	return FormatNumber(s.Previous) + " " + s.Operator.Symbol()
}

func groupInteger(intPart string) string {
	sign, digits := "", intPart
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if !allDigits(digits) {
		return intPart
	}
	// big.Int would drop redundant leading zeros.
	if len(digits) > 1 && digits[0] == '0' {
		return intPart
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return intPart
	}
	return sign + humanize.BigComma(n)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
