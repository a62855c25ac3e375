package asm

import "strings"

// AddrMode tags the classifier's output: one of the eleven addressing-mode
// operand-text shapes, or "unrecognised".
type AddrMode int

const (
	AMNone AddrMode = iota
	AMImplied
	AMImmediate
	AMIndirect
	AMIndirectX
	AMIndirectY
	AMZeroPage
	AMZeroPageX
	AMZeroPageY
	AMAbsolute
	AMAbsoluteX
	AMAbsoluteY
)

// Operand is the classifier's result: the addressing-mode tag, the value
// text to encode (post constant substitution, selector stripped), the
// byte selector if one was present ('<' or '>', else 0), and the resolved
// 16-bit value when the text was a literal (resolved is false for a
// forward-referenced label or constant).
type Operand struct {
	Mode     AddrMode
	Value    string
	Selector byte
	Resolved bool
	Number   uint16
}

// classifyOperand determines an operand's addressing mode: after stripping
// a leading '#', it matches the indirect/indexed/bare forms, preferring
// zero-page when the resolved value fits in a byte.
func (a *Assembler) classifyOperand(raw string) (Operand, *AssembleError) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.EqualFold(text, "A") {
		return Operand{Mode: AMImplied}, nil
	}

	if strings.HasPrefix(text, "#") {
		op, err := a.resolveValueText(text[1:])
		if err != nil {
			return Operand{}, err
		}
		op.Mode = AMImmediate
		return op, nil
	}

	if strings.HasPrefix(text, "(") {
		return a.classifyIndirect(text)
	}

	indexed, suffix := splitIndexSuffix(text)
	op, err := a.resolveValueText(indexed)
	if err != nil {
		return Operand{}, err
	}

	switch suffix {
	case "X":
		if op.Resolved && op.Number < 256 && op.Selector == 0 {
			op.Mode = AMZeroPageX
		} else {
			op.Mode = AMAbsoluteX
		}
	case "Y":
		if op.Resolved && op.Number < 256 && op.Selector == 0 {
			op.Mode = AMZeroPageY
		} else {
			op.Mode = AMAbsoluteY
		}
	default:
		if op.Selector != 0 {
			op.Mode = AMZeroPage
		} else if op.Resolved && op.Number < 256 {
			op.Mode = AMZeroPage
		} else {
			op.Mode = AMAbsolute
		}
	}
	return op, nil
}

func (a *Assembler) classifyIndirect(text string) (Operand, *AssembleError) {
	close := strings.Index(text, ")")
	if close == -1 {
		return Operand{}, newErr(ErrOperandParse, "unterminated parenthesis in operand %q", text)
	}
	inner := text[1:close]
	after := text[close+1:]

	switch {
	case strings.HasSuffix(strings.ToUpper(inner), ",X"):
		op, err := a.resolveValueText(inner[:len(inner)-2])
		if err != nil {
			return Operand{}, err
		}
		op.Mode = AMIndirectX
		return op, nil
	case strings.HasPrefix(strings.ToUpper(after), ",Y"):
		op, err := a.resolveValueText(inner)
		if err != nil {
			return Operand{}, err
		}
		op.Mode = AMIndirectY
		return op, nil
	case after == "":
		op, err := a.resolveValueText(inner)
		if err != nil {
			return Operand{}, err
		}
		op.Mode = AMIndirect
		return op, nil
	default:
		return Operand{}, newErr(ErrOperandParse, "malformed indirect operand %q", text)
	}
}

// splitIndexSuffix strips a trailing ",X" or ",Y" (case-insensitive),
// returning the base text and "X"/"Y"/"".
func splitIndexSuffix(text string) (base string, suffix string) {
	upper := strings.ToUpper(text)
	if strings.HasSuffix(upper, ",X") {
		return text[:len(text)-2], "X"
	}
	if strings.HasSuffix(upper, ",Y") {
		return text[:len(text)-2], "Y"
	}
	return text, ""
}

// resolveValueText strips an optional leading '<'/'>' selector, substitutes
// a known constant, and reports whether the remaining text is a resolvable
// numeric literal.
func (a *Assembler) resolveValueText(text string) (Operand, *AssembleError) {
	var selector byte
	if len(text) > 0 && (text[0] == '<' || text[0] == '>') {
		selector = text[0]
		text = text[1:]
	}

	substituted := text
	if resolved, ok := a.constants[strings.ToUpper(text)]; ok {
		substituted = resolved
	}

	if selector != 0 {
		applied, err := getHighLowByte(substituted, selector)
		if err != nil {
			return Operand{}, err
		}
		if v, ok := parseLiteral(applied); ok {
			return Operand{Value: applied, Selector: selector, Resolved: true, Number: uint16(v)}, nil
		}
		return Operand{Value: text, Selector: selector, Resolved: false}, nil
	}

	if v, ok := parseLiteral(substituted); ok {
		return Operand{Value: substituted, Resolved: true, Number: uint16(v)}, nil
	}
	return Operand{Value: text, Resolved: false}, nil
}
