package parser

// matchBrace finds the brace that closes the '{' at src[0] and returns the
// length of the span including both braces. A backslash hides the byte after
// it from the depth count. It returns false when the input ends first.
func matchBrace(src []byte) (int, bool) {
	depth := 1
	for i := 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// findQuote finds the '"' that closes the quote at src[0] and returns the
// length of the span including both quotes. A quote preceded by an odd run
// of backslashes is part of the interior.
func findQuote(src []byte) (int, bool) {
	for i := 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1, true
		}
	}
	return 0, false
}
