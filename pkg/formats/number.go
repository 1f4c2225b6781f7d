package formats

import "strconv"

// scannerBufferSize caps the length of a single source line.
const scannerBufferSize = 16 * 1024 * 1024

// parseNumber reads the longest leading decimal number of tok, so "1,5"
// reads as 1 and "0.5f" as 0.5. A token with no numeric prefix reads as 0;
// magnitudes beyond float64 read as ±Inf.
func parseNumber(tok string) float64 {
	end := numberPrefix(tok)
	if end == 0 {
		return 0
	}
	// Out of range still yields ±Inf, or 0 on underflow.
	v, _ := strconv.ParseFloat(tok[:end], 64)
	return v
}

// parseInteger reads the longest leading signed integer of tok, or 0.
func parseInteger(tok string) int {
	i := 0
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	start := i
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == start {
		return 0
	}
	n, err := strconv.Atoi(tok[:i])
	if err != nil {
		return 0
	}
	return n
}

// parseNumbers reads n values from tokens, filling missing ones with 0.
func parseNumbers(tokens []string, n int) []float64 {
	vals := make([]float64, n)
	for i := 0; i < n && i < len(tokens); i++ {
		vals[i] = parseNumber(tokens[i])
	}
	return vals
}

// numberPrefix returns the length of the decimal float at the start of s:
// [sign] digits [. digits] [e [sign] digits], with at least one mantissa digit.
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
