package module

import (
	"strconv"
	"strings"
)

// ParseBetAmount parses a stake token. Accepts a bare integer or one
// prefixed with 押 or 赌, e.g. "押1000".
func ParseBetAmount(token string) (int64, error) {
	raw := token
	if rest, ok := strings.CutPrefix(token, "押"); ok {
		raw = rest
	} else if rest, ok := strings.CutPrefix(token, "赌"); ok {
		raw = rest
	}
	return strconv.ParseInt(raw, 10, 64)
}
