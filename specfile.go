package lexgen

import (
	"bufio"
	"io"
	"strings"

	"github.com/projectdiscovery/lexgen/syntax"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// sectionMarker separates the sections of a classic spec file.
const sectionMarker = "%%"

// ParseSpecFile reads the classic lexer specification format:
//
//	preamble
//	%%
//	error handler
//	%%
//	internal error handler
//	%%
//	pattern action   (one rule per line)
//	%%
//	trailer
//
// In the rules section blank lines and lines starting with ';' or '#' are
// skipped. A pattern is either a quoted literal or a slash delimited regex;
// the text after the pattern, with an optional "->" separator, is the
// action. Bare patterns without delimiters are accepted for compatibility
// and split on " -> ".
func ParseSpecFile(r io.Reader) (*Options, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	opts := &Options{}
	opts.Preamble = readSection(scanner)
	opts.ErrorHandler = readSection(scanner)
	opts.InternalErrorHandler = readSection(scanner)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == sectionMarker {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rule, err := parseRuleLine(trimmed)
		if err != nil {
			return nil, errorutil.NewWithTag("lexgen", "rule line %d: %s", lineNo, err.Error())
		}
		opts.Rules = append(opts.Rules, rule)
	}

	opts.Trailer = readSection(scanner)
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return opts, nil
}

// readSection accumulates lines until the %% marker or end of input.
func readSection(scanner *bufio.Scanner) string {
	var buf strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if line == sectionMarker {
			break
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.String()
}

// parseRuleLine splits one rules-section line into pattern and action.
func parseRuleLine(line string) (Rule, error) {
	if strings.HasPrefix(line, `"`) || strings.HasPrefix(line, "/") {
		// delimited pattern: the parser tells us where it ends
		_, rest, err := syntax.ParsePattern(line)
		if err != nil {
			return Rule{}, err
		}
		pattern := line[:len(line)-len(rest)]
		action := strings.TrimSpace(rest)
		action = strings.TrimSpace(strings.TrimPrefix(action, "->"))
		return Rule{Pattern: pattern, Action: action}, nil
	}

	pattern, action, found := strings.Cut(line, " -> ")
	if !found {
		return Rule{}, errorutil.NewWithTag("lexgen", "missing ' -> ' separator in %q", line)
	}
	if _, err := syntax.Parse(pattern); err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: pattern, Action: action}, nil
}
