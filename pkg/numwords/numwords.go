// Package numwords spells rupee amounts in English using the Indian numbering system
// (thousand, lakh, crore), as printed on bills.
package numwords

import (
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	thousand = 1_000
	lakh     = 100_000
	crore    = 10_000_000
)

// AmountToWords returns e.g. "One Thousand Five Hundred Only" for 1500.
func AmountToWords(amount int64) (string, error) {
	if amount < 0 {
		return "", apperror.NewInvalidArgument("amount must not be negative, got %d", amount)
	}
	if amount == 0 {
		return "Zero Only", nil
	}
	return strings.Join(spell(amount), " ") + " Only", nil
}

// spell expands n > 0. Amounts of a hundred crore and above spell the crore count
// recursively ("One Hundred Crore", "One Thousand Crore").
func spell(n int64) []string {
	var words []string
	if n >= crore {
		words = append(words, spell(n/crore)...)
		words = append(words, "Crore")
		n %= crore
	}
	if n >= lakh {
		words = append(words, belowHundred(n/lakh)...)
		words = append(words, "Lakh")
		n %= lakh
	}
	if n >= thousand {
		words = append(words, belowHundred(n/thousand)...)
		words = append(words, "Thousand")
		n %= thousand
	}
	if n >= 100 {
		words = append(words, ones[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		words = append(words, belowHundred(n)...)
	}
	return words
}

func belowHundred(n int64) []string {
	if n < 20 {
		return []string{ones[n]}
	}
	if n%10 == 0 {
		return []string{tens[n/10]}
	}
	return []string{tens[n/10], ones[n%10]}
}
