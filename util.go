package lexgen

import (
	"strconv"
	"strings"
)

// joinInt64 renders values as a comma separated list for table literals.
func joinInt64(values []int64) string {
	var out strings.Builder
	for i, v := range values {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(strconv.FormatInt(v, 10))
	}
	return out.String()
}

// joinBool renders values as a comma separated list of true/false.
func joinBool(values []bool) string {
	var out strings.Builder
	for i, v := range values {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(strconv.FormatBool(v))
	}
	return out.String()
}

// joinBytes renders values as a comma separated list of decimal bytes.
func joinBytes(values []byte) string {
	var out strings.Builder
	for i, v := range values {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(strconv.Itoa(int(v)))
	}
	return out.String()
}

// indentBlock prefixes every non-empty line of block with the given indent,
// so user-supplied action snippets sit correctly inside the generated
// switch.
func indentBlock(block, indent string) string {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
