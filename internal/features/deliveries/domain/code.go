package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a validation code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// CodeGenerator produces validation codes. Services take one so tests can pin the value.
type CodeGenerator func() string

// GenerateCode returns a uniformly random code in 000000-999999, leading zeros kept.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic(fmt.Sprintf("domain: reading random code: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// ValidCodeFormat reports whether code is exactly six ASCII digits.
func ValidCodeFormat(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
