package asm

import "strings"

// lexicalCleanup collapses whitespace runs, splits on lines, strips
// comments, trims, infers trailing colons on bare labels, compacts .DB/.DW
// operand runs (preserving in-string spaces as the literal token ",32,"),
// then joins everything into a single space-delimited token stream.
func lexicalCleanup(source string) []string {
	lines := strings.Split(source, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = stripComment(line)
		line = collapseSpaces(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = compactDataDirective(line)
		cleaned = append(cleaned, line)
	}

	cleaned = inferLabelColons(cleaned)

	joined := strings.Join(cleaned, " ")
	return strings.Fields(joined)
}

func stripComment(line string) string {
	inString := false
	var quote byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString {
			if ch == quote {
				inString = false
			}
			continue
		}
		switch ch {
		case '\'', '"':
			inString = true
			quote = ch
		case ';':
			return line[:i]
		}
	}
	return line
}

func collapseSpaces(line string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range line {
		if r == ' ' || r == '\t' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// inferLabelColons tags a token with a trailing ':' when it stands alone on
// its line, or precedes a reserved word on its line and is not itself
// reserved — the "unmarked label" convention where a colon is optional.
func inferLabelColons(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for i, line := range out {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		first := fields[0]
		if strings.HasSuffix(first, ":") || isReserved(strings.ToUpper(first)) {
			continue
		}
		if len(fields) == 1 {
			out[i] = first + ":"
			continue
		}
		if isReserved(strings.ToUpper(fields[1])) {
			out[i] = first + ":" + line[len(first):]
		}
	}
	return out
}

// compactDataDirective removes spaces outside quoted literals from a
// .DB/.DW directive's operand list (leaving everything before the
// directive keyword untouched) and rewrites in-string spaces as the
// literal token ",32," so the single space delimiter stays universal once
// everything is joined and re-split.
func compactDataDirective(line string) string {
	fields := strings.Fields(line)
	idx := -1
	for i, f := range fields {
		u := strings.ToUpper(f)
		if u == ".DB" || u == ".DW" {
			idx = i
			break
		}
	}
	if idx == -1 || idx == len(fields)-1 {
		return line
	}

	prefix := strings.Join(fields[:idx+1], " ")
	operandText := strings.Join(fields[idx+1:], " ")

	var b strings.Builder
	inString := false
	var quote byte
	for i := 0; i < len(operandText); i++ {
		ch := operandText[i]
		switch {
		case inString && ch == quote:
			inString = false
			b.WriteByte(ch)
		case inString && ch == ' ':
			b.WriteString(",32,")
		case inString:
			b.WriteByte(ch)
		case ch == '\'' || ch == '"':
			inString = true
			quote = ch
			b.WriteByte(ch)
		case ch == ' ':
			// drop spaces between operands outside string literals.
		default:
			b.WriteByte(ch)
		}
	}
	return prefix + " " + b.String()
}
