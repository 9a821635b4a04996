package reminders

import (
	"strconv"
	"strings"
)

const keyPrefix = "expense_"

// Key returns the notification key for an expense. Every expense has
// exactly one reminder slot.
func Key(expenseID uint) string {
	return keyPrefix + strconv.FormatUint(uint64(expenseID), 10)
}

// ParseKey returns the expense ID for a key created by Key.
func ParseKey(key string) (uint, bool) {
	digits, found := strings.CutPrefix(key, keyPrefix)
	if !found {
		return 0, false
	}

	id, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}

	// Reject non-canonical forms like "expense_007"
	if Key(uint(id)) != key {
		return 0, false
	}

	return uint(id), true
}
