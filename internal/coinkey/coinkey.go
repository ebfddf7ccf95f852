// Package coinkey converts six-digit coin numbers to the four-symbol key
// codes carried in the coin page URL (?key=), and back.
package coinkey

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	base    = len(charset)
	width   = 4

	MinNumber = 1
	MaxNumber = 999999
)

var permutation = [base]int{
	23, 7, 31, 15, 2, 28, 11, 34, 19, 6,
	25, 13, 30, 8, 21, 35, 4, 17, 29, 12,
	1, 26, 14, 33, 9, 22, 5, 18, 32, 16,
	3, 27, 10, 24, 0, 20,
}

var reverse = func() [base]int {
	var r [base]int
	for i, p := range permutation {
		r[p] = i
	}
	return r
}()

var (
	numberRe = regexp.MustCompile(`^\d{6}$`)
	codeRe   = regexp.MustCompile(`^[a-z0-9]{4}$`)

	ErrBadNumber = errors.New("coinkey: number must be six digits")
	ErrRange     = fmt.Errorf("coinkey: number must be in %06d-%06d", MinNumber, MaxNumber)
	ErrBadCode   = errors.New("coinkey: code must be four lowercase letters or digits")
)

// Encrypt maps a six-digit number ("000001".."999999") to its key code.
func Encrypt(number string) (string, error) {
	if !numberRe.MatchString(number) {
		return "", ErrBadNumber
	}
	n, _ := strconv.Atoi(number)
	if n < MinNumber || n > MaxNumber {
		return "", ErrRange
	}
	return encode(n), nil
}

// MustEncrypt is Encrypt for numbers already known to be in range.
func MustEncrypt(n int) string {
	if n < MinNumber || n > MaxNumber {
		panic(ErrRange)
	}
	return encode(n)
}

func encode(n int) string {
	// 36^4 exceeds MaxNumber, so four digits always suffice.
	var out [width]byte
	for i := width - 1; i >= 0; i-- {
		out[i] = charset[permutation[n%base]]
		n /= base
	}
	return string(out[:])
}

// Decrypt maps a key code back to its six-digit number. Codes that do not
// come from Encrypt still decode to some number in range: zero wraps to
// 000002 and values above MaxNumber are folded with mod MaxNumber, matching
// what the coin page does with hand-typed keys.
func Decrypt(code string) (string, error) {
	if !codeRe.MatchString(code) {
		return "", ErrBadCode
	}
	n := 0
	for i := 0; i < len(code); i++ {
		idx := indexOf(code[i])
		n = n*base + reverse[idx]
	}
	if n == 0 {
		n = MaxNumber + 1
	}
	if n > MaxNumber {
		n = n%MaxNumber + 1
	}
	return Number(n), nil
}

// Number formats n as a zero-padded six-digit id.
func Number(n int) string {
	return fmt.Sprintf("%06d", n)
}

func indexOf(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	default:
		return 26 + int(c-'0')
	}
}
