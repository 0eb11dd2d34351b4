package commands

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrTaskNumberRequired indicates no task number was provided.
var ErrTaskNumberRequired = errors.New("task number required")

// ParseTaskNumber parses the first argument as a 1-based task number, as shown by list.
func ParseTaskNumber(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskNumberRequired
	}
	return parseNumber(args[0])
}

// ParseTaskNumbers parses every argument as a task number. Numbers may also be
// comma separated ("1,3"). Duplicates are removed; order of first appearance is kept.
func ParseTaskNumbers(args []string) ([]int, error) {
	var nums []int
	for _, arg := range args {
		for _, tok := range strings.Split(arg, ",") {
			if tok == "" {
				continue
			}
			n, err := parseNumber(tok)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(nums, n) {
				nums = append(nums, n)
			}
		}
	}
	if len(nums) == 0 {
		return nil, ErrTaskNumberRequired
	}
	return nums, nil
}

func parseNumber(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task number: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task number: %s", s)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// checkRange reports the first number that does not address one of n tasks.
func checkRange(nums []int, n int) error {
	for _, num := range nums {
		if num < 1 || num > n {
			return fmt.Errorf("task number out of range: %d", num)
		}
	}
	return nil
}
