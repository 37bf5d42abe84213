package utils

import (
	"strconv"
	"strings"
)

// FormatRupee renders a whole-rupee amount with Indian digit grouping,
// e.g. 123456 -> "₹1,23,456".
func FormatRupee(amount int64) string {
	return formatWithSymbol("₹", amount)
}

// FormatRupeeASCII is FormatRupee for outputs limited to Latin-1 (PDF core fonts).
func FormatRupeeASCII(amount int64) string {
	return formatWithSymbol("Rs. ", amount)
}

func formatWithSymbol(symbol string, amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + symbol + groupIndian(amount)
}

// groupIndian places the first separator after three digits and every
// following one after two (lakh/crore grouping).
func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	parts := []string{}
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
