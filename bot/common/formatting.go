package common

import (
	"fmt"
	"strconv"
	"strings"

	"casinobot/domain/entities"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	str := strconv.FormatInt(balance, 10)
	sign := ""
	if balance < 0 {
		sign, str = "-", str[1:]
	}

	// Add commas for thousands
	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatMoney formats an amount as dollars, e.g. $1,250
func FormatMoney(amount int64) string {
	if amount < 0 {
		return "-$" + FormatBalance(-amount)
	}
	return "$" + FormatBalance(amount)
}

// FormatHand renders a hand with its value, e.g. "(17): 10♠️ 7♥️"
func FormatHand(hand entities.Hand) string {
	return fmt.Sprintf("(%d): %s", hand.Value(), hand.String())
}
