package domain

import (
	"fmt"
	"math/rand"
	"regexp"
)

var accountNumberPattern = regexp.MustCompile(`^STL-\d{3}-\d{3}-\d{3}$`)

// GenerateAccountNumber draws nine digits and formats them as STL-ddd-ddd-ddd.
// intn defaults to math/rand when nil. Uniqueness is the caller's concern.
func GenerateAccountNumber(intn func(n int) int) string {
	if intn == nil {
		intn = rand.Intn
	}

	var digits [9]byte
	for i := range digits {
		digits[i] = byte('0' + intn(10))
	}

	return fmt.Sprintf("STL-%s-%s-%s", digits[0:3], digits[3:6], digits[6:9])
}

func IsValidAccountNumber(accountNumber string) bool {
	return accountNumberPattern.MatchString(accountNumber)
}
