package symbol

import "strings"

// FullSymbol prefixes a bare 6-digit A-share code with its exchange:
// Shanghai for 6xxxxx, Beijing for 4/8/43/92 prefixes, Shenzhen
// otherwise. Codes that already carry a prefix are returned unchanged.
func FullSymbol(code string) string {
	if len(code) > 0 && !isDigit(code[0]) {
		return code
	}

	switch {
	case strings.HasPrefix(code, "6"):
		return "sh" + code
	case strings.HasPrefix(code, "0"), strings.HasPrefix(code, "3"):
		return "sz" + code
	case strings.HasPrefix(code, "4"), strings.HasPrefix(code, "8"), strings.HasPrefix(code, "92"):
		return "bj" + code
	default:
		return "sz" + code
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
