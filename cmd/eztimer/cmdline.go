package main

import "strings"

// splitCommand translates a command string into its argument list, using the
// same rules as the MS C runtime:
// 1) Arguments are delimited by white space, which is either a space or a tab.
// 2) A string surrounded by double quotation marks is interpreted as a single argument,
//	regardless of white space contained within. A quoted string can be embedded in an argument.
// 3) A double quotation mark preceded by a backslash is interpreted as a literal double quotation mark.
func splitCommand(cmd string) []string {
	var parts []string
	var inQuote rune

	flush := func(b *strings.Builder) {
		if b.Len() > 0 {
			parts = append(parts, b.String())
			b.Reset()
		}
	}

	var b strings.Builder
	for i, ch := range cmd {
		if (ch == '"' || ch == '\'') && (i == 0 || cmd[i-1] != '\\') {
			switch inQuote {
			case rune(0):
				inQuote = ch
			case ch:
				inQuote = rune(0)
			default:
				b.WriteRune(ch)
			}
		} else if (ch == ' ' || ch == '\t') && inQuote == 0 {
			flush(&b)
		} else {
			b.WriteRune(ch)
		}
	}
	flush(&b)
	return parts
}
