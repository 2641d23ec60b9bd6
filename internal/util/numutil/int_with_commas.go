package numutil

import "strconv"

// Integer is any signed integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// IntWithCommas returns a string representation of an integer with commas.
//
// Example:
//
//	12345 -> "12,345"
func IntWithCommas[T Integer](i T) string {
	n := int64(i)
	if n < 0 {
		return "-" + IntWithCommas(-n)
	}

	digits := strconv.FormatInt(n, 10)
	for pos := len(digits) - 3; pos > 0; pos -= 3 {
		digits = digits[:pos] + "," + digits[pos:]
	}
	return digits
}
