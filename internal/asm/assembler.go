package asm

import (
	"strings"

	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/memory"
)

type wordRef struct {
	addr uint16
	expr string
}

type byteRef struct {
	addr     uint16
	expr     string
	selector byte
}

type branchRef struct {
	addr  uint16
	label string
}

// Assembler is the two-pass translator: pass 1 resolves constants and
// encodes instructions/directives, leaving placeholders for anything
// referencing a label not yet seen; pass 2 drains the three
// forward-reference trackers once every label is known.
type Assembler struct {
	bus    *memory.Bus
	sink   io.StatusSink
	beeper io.Beeper

	constants map[string]string
	labels    map[string]uint16

	wordRefs   []wordRef
	byteRefs   []byteRef
	branchRefs []branchRef

	pc uint16
}

// New creates an Assembler writing to bus. sink and beeper may be nil;
// when present they receive the error logging and the beep that a failed
// assemble triggers.
func New(bus *memory.Bus, sink io.StatusSink, beeper io.Beeper) *Assembler {
	return &Assembler{bus: bus, sink: sink, beeper: beeper}
}

// Labels returns the resolved label table after a successful Assemble,
// for tools (the debug UI, the disassembler) that want to annotate
// addresses with names.
func (a *Assembler) Labels() map[string]uint16 {
	return a.labels
}

// Assemble implements the full pipeline: lexical cleanup, constant
// resolution, instruction/directive encoding, and label fixup. Any error
// aborts the assemble; the memory image is left partially written but the
// caller must not execute it.
func (a *Assembler) Assemble(source string) error {
	a.constants = make(map[string]string)
	a.labels = make(map[string]uint16)
	a.wordRefs = nil
	a.byteRefs = nil
	a.branchRefs = nil
	a.pc = memory.DefaultOrigin

	tokens := lexicalCleanup(source)

	tokens, err := a.resolveConstants(tokens)
	if err == nil {
		err = a.encodePass(tokens)
	}
	if err == nil {
		err = a.fixupLabels()
	}

	if err != nil {
		if a.sink != nil {
			a.sink.LogError(err.Error())
			a.sink.LogError("Could not assemble code.")
		}
		if a.beeper != nil {
			a.beeper.Beep()
		}
		return err
	}
	return nil
}

// resolveConstants is pass 1a: scan for "DEFINE name value",
// "name = value", and "name EQU value", inserting each into the constant
// table and removing its tokens from the stream.
func (a *Assembler) resolveConstants(tokens []string) ([]string, *AssembleError) {
	out := make([]string, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		upper := strings.ToUpper(tok)

		if upper == "DEFINE" && i+2 < len(tokens) {
			if err := a.defineConstant(tokens[i+1], tokens[i+2]); err != nil {
				return nil, err
			}
			i += 3
			continue
		}
		if i+2 < len(tokens) && tokens[i+1] == "=" {
			if err := a.defineConstant(tok, tokens[i+2]); err != nil {
				return nil, err
			}
			i += 3
			continue
		}
		if i+2 < len(tokens) && strings.ToUpper(tokens[i+1]) == "EQU" {
			// lexicalCleanup marks "name EQU value" as "name: EQU value"
			// since EQU is reserved; the name is the part before the colon.
			if err := a.defineConstant(strings.TrimSuffix(tok, ":"), tokens[i+2]); err != nil {
				return nil, err
			}
			i += 3
			continue
		}

		out = append(out, tok)
		i++
	}
	return out, nil
}

// isStatementStart reports whether tok begins a new statement (a label
// definition or a reserved word), meaning the previous instruction must
// not consume it as an operand.
func isStatementStart(tok string) bool {
	if strings.HasSuffix(tok, ":") {
		return true
	}
	return isReserved(strings.ToUpper(tok))
}

// hasOptionalOperand reports whether a mnemonic's slot vector supports
// both an implied/accumulator form and at least one operand-bearing form
// (ASL/LSR/ROL/ROR), meaning the next token may or may not belong to it.
func hasOptionalOperand(slots Slots) bool {
	if slots.Imp == nil {
		return false
	}
	return slots.Zp != nil || slots.Zpx != nil || slots.Abs != nil || slots.Abx != nil
}

func (a *Assembler) encodePass(tokens []string) *AssembleError {
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		upper := strings.ToUpper(tok)

		switch {
		case strings.HasSuffix(tok, ":"):
			if err := a.addLabel(tok[:len(tok)-1]); err != nil {
				return err
			}
			i++

		case upper == "ORG" || upper == ".ORG":
			if i+1 >= len(tokens) {
				return newErr(ErrOrgMissing, "ORG requires an address operand")
			}
			if err := a.doOrg(tokens[i+1]); err != nil {
				return err
			}
			i += 2

		case upper == ".DB":
			if i+1 >= len(tokens) {
				return newErr(ErrDataMalformed, ".DB requires an operand list")
			}
			if err := a.emitDB(tokens[i+1]); err != nil {
				return err
			}
			i += 2

		case upper == ".DW":
			if i+1 >= len(tokens) {
				return newErr(ErrDataMalformed, ".DW requires an operand list")
			}
			if err := a.emitDW(tokens[i+1]); err != nil {
				return err
			}
			i += 2

		default:
			if _, ok := branchTable[upper]; ok {
				if i+1 >= len(tokens) {
					return newErr(ErrOperandParse, "%s requires a branch target", upper)
				}
				if err := a.encodeBranch(upper, tokens[i+1]); err != nil {
					return err
				}
				i += 2
				continue
			}

			slots, ok := opcodeTable[upper]
			if !ok {
				return newErr(ErrUnknownInstruction, "unknown instruction %q", tok)
			}

			operandText := ""
			consumed := false
			pureImplied := slots.Imp != nil && !hasOptionalOperand(slots) && slots.Imm == nil &&
				slots.Zp == nil && slots.Zpx == nil && slots.Zpy == nil && slots.Abs == nil &&
				slots.Abx == nil && slots.Aby == nil && slots.Ind == nil && slots.Inx == nil && slots.Iny == nil

			if !pureImplied {
				if hasOptionalOperand(slots) {
					if i+1 < len(tokens) && !isStatementStart(tokens[i+1]) {
						operandText = tokens[i+1]
						consumed = true
					}
				} else {
					if i+1 >= len(tokens) || isStatementStart(tokens[i+1]) {
						return newErr(ErrOperandParse, "%s requires an operand", upper)
					}
					operandText = tokens[i+1]
					consumed = true
				}
			}

			if err := a.encodeInstruction(upper, slots, operandText); err != nil {
				return err
			}
			i++
			if consumed {
				i++
			}
		}
	}
	return nil
}

func (a *Assembler) addLabel(name string) *AssembleError {
	upper := strings.ToUpper(name)
	if isReserved(upper) {
		return newErr(ErrReservedWord, "%q is a reserved word and cannot be used as a label", name)
	}
	if _, exists := a.constants[upper]; exists {
		return newErr(ErrLabelAndConstant, "%q is already defined as a constant", name)
	}
	if _, exists := a.labels[upper]; exists {
		return newErr(ErrLabelAlreadyDefined, "label %q is already defined", name)
	}
	a.labels[upper] = a.pc
	return nil
}

func (a *Assembler) doOrg(tok string) *AssembleError {
	substituted := tok
	if resolved, ok := a.constants[strings.ToUpper(tok)]; ok {
		substituted = resolved
	}
	v, ok := parseLiteral(substituted)
	if !ok {
		return newErr(ErrOrgArgInvalid, "ORG operand %q is not a resolvable address", tok)
	}
	a.pc = uint16(v)
	return nil
}

// encodeInstruction is pass 1b's encoder: classify the operand, resolve
// the addressing mode to an opcode byte, and emit it plus its operand.
func (a *Assembler) encodeInstruction(mnemonic string, slots Slots, operandText string) *AssembleError {
	op, err := a.classifyOperand(operandText)
	if err != nil {
		return err
	}

	mode := op.Mode
	switch {
	case mode == AMZeroPage && slots.Zp == nil && slots.Abs != nil:
		mode = AMAbsolute
	case mode == AMZeroPageX && slots.Zpx == nil && slots.Abx != nil:
		mode = AMAbsoluteX
	case mode == AMZeroPageY && slots.Zpy == nil && slots.Aby != nil:
		mode = AMAbsoluteY
	}

	opcodeByte := slotFor(slots, mode)
	if opcodeByte == nil {
		return newErr(ErrInvalidAddressingMode, "%s does not support the given addressing mode", mnemonic)
	}

	a.bus.Poke(a.pc, *opcodeByte)
	a.pc++

	switch mode {
	case AMImplied:
		return nil
	case AMImmediate, AMZeroPage, AMZeroPageX, AMZeroPageY, AMIndirectX, AMIndirectY:
		return a.emitOperandByte(op)
	case AMAbsolute, AMAbsoluteX, AMAbsoluteY, AMIndirect:
		return a.emitOperandWord(op)
	default:
		return newErr(ErrInvalidAddressingMode, "%s: unrecognised addressing mode", mnemonic)
	}
}

func (a *Assembler) emitOperandByte(op Operand) *AssembleError {
	if op.Resolved {
		a.bus.Poke(a.pc, uint8(op.Number))
		a.pc++
		return nil
	}
	if op.Selector == 0 {
		return newErr(ErrLabelSingleByte, "label %q used in a single-byte operand needs a < or > selector", op.Value)
	}
	a.byteRefs = append(a.byteRefs, byteRef{addr: a.pc, expr: op.Value, selector: op.Selector})
	a.bus.Poke(a.pc, 0)
	a.pc++
	return nil
}

func (a *Assembler) emitOperandWord(op Operand) *AssembleError {
	if op.Resolved {
		a.bus.Poke16(a.pc, op.Number)
		a.pc += 2
		return nil
	}
	a.wordRefs = append(a.wordRefs, wordRef{addr: a.pc, expr: op.Value})
	a.bus.Poke16(a.pc, 0)
	a.pc += 2
	return nil
}

// encodeBranch encodes a relative branch, kept separate from the general
// slot-table encoder since its operand is always a signed one-byte
// displacement rather than an addressing-mode-dependent byte or word.
func (a *Assembler) encodeBranch(mnemonic, operandText string) *AssembleError {
	opcodeByte := branchTable[mnemonic]
	a.bus.Poke(a.pc, opcodeByte)
	a.pc++

	op, err := a.resolveValueText(operandText)
	if err != nil {
		return err
	}

	branchAt := a.pc
	if op.Resolved {
		disp := int(op.Number) - int(branchAt+1)
		if disp < -128 || disp > 127 {
			return newErr(ErrBranchOutOfRange, "branch target out of range (%d)", disp)
		}
		a.bus.Poke(branchAt, byte(int8(disp)))
	} else {
		a.branchRefs = append(a.branchRefs, branchRef{addr: branchAt, label: op.Value})
		a.bus.Poke(branchAt, 0)
	}
	a.pc++
	return nil
}

// emitDB encodes a .DB directive's comma-separated item list: quoted
// string literals expand to their bytes, everything else is a
// numeric/label byte value.
func (a *Assembler) emitDB(operandList string) *AssembleError {
	for _, item := range splitItems(operandList) {
		if quoted, inner, ok := unquote(item); ok {
			if !quoted {
				return newErr(ErrDataUnclosedString, "unterminated string literal in .DB operand")
			}
			for _, v := range expandStringBytes(inner) {
				a.bus.Poke(a.pc, v)
				a.pc++
			}
			continue
		}

		op, err := a.resolveValueText(item)
		if err != nil {
			return err
		}
		if op.Resolved {
			a.bus.Poke(a.pc, uint8(op.Number))
			a.pc++
			continue
		}
		selector := op.Selector
		if selector == 0 {
			selector = '<'
		}
		a.byteRefs = append(a.byteRefs, byteRef{addr: a.pc, expr: op.Value, selector: selector})
		a.bus.Poke(a.pc, 0)
		a.pc++
	}
	return nil
}

// emitDW encodes a .DW directive's comma-separated item list: two bytes
// per item, little-endian, byte selectors forbidden.
func (a *Assembler) emitDW(operandList string) *AssembleError {
	for _, item := range splitItems(operandList) {
		if len(item) > 0 && (item[0] == '<' || item[0] == '>') {
			return newErr(ErrDataHighLowOnWord, "byte selector not allowed in .DW operand %q", item)
		}
		op, err := a.resolveValueText(item)
		if err != nil {
			return err
		}
		if op.Resolved {
			a.bus.Poke16(a.pc, op.Number)
		} else {
			a.wordRefs = append(a.wordRefs, wordRef{addr: a.pc, expr: op.Value})
			a.bus.Poke16(a.pc, 0)
		}
		a.pc += 2
	}
	return nil
}

// fixupLabels is pass 2: drain all three forward-reference trackers now
// that every label has been seen.
func (a *Assembler) fixupLabels() *AssembleError {
	for _, ref := range a.wordRefs {
		v, err := a.resolveLabelExpr(ref.expr)
		if err != nil {
			return err
		}
		a.bus.Poke16(ref.addr, v)
	}
	for _, ref := range a.byteRefs {
		v, err := a.resolveLabelExpr(ref.expr)
		if err != nil {
			return err
		}
		applied, err2 := getHighLowByte(formatLiteral(uint32(v), "$0"), ref.selector)
		if err2 != nil {
			return err2
		}
		n, _ := parseLiteral(applied)
		a.bus.Poke(ref.addr, uint8(n))
	}
	for _, ref := range a.branchRefs {
		target, ok := a.labels[strings.ToUpper(ref.label)]
		if !ok {
			return newErr(ErrBranchLabelNotFound, "branch target %q not found", ref.label)
		}
		disp := int(target) - int(ref.addr+1)
		if disp < -128 || disp > 127 {
			return newErr(ErrBranchOutOfRange, "branch target %q out of range (%d)", ref.label, disp)
		}
		a.bus.Poke(ref.addr, byte(int8(disp)))
	}
	return nil
}

// resolveLabelExpr resolves "LABEL", "LABEL+n", or "LABEL-n" against the
// label table, the only forms a word/byte forward-reference entry holds.
func (a *Assembler) resolveLabelExpr(expr string) (uint16, *AssembleError) {
	sign, base, rest := splitContinuation(expr)
	addr, ok := a.labels[strings.ToUpper(base)]
	if !ok {
		return 0, newErr(ErrLabelNotFound, "label %q not found", base)
	}
	if rest == "" {
		return addr, nil
	}
	combined, err := a.addValue(formatLiteral(uint32(addr), "$0"), string(sign)+rest)
	if err != nil {
		return 0, err
	}
	v, ok := parseLiteral(combined)
	if !ok {
		return 0, newErr(ErrAddValue, "could not resolve %q", expr)
	}
	return uint16(v), nil
}

// splitItems splits a comma-joined operand list into its items without
// splitting inside quoted string literals.
func splitItems(text string) []string {
	var items []string
	var cur strings.Builder
	inString := false
	var quote byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			cur.WriteByte(ch)
			if ch == quote {
				inString = false
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"':
			inString = true
			quote = ch
			cur.WriteByte(ch)
		case ch == ',':
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	items = append(items, cur.String())
	return items
}

// unquote reports whether item is a quoted string literal. ok is false if
// item doesn't start with a quote character at all (it's some other kind
// of operand); quoted is false if it starts with a quote but never closes.
func unquote(item string) (quoted bool, inner string, ok bool) {
	if len(item) == 0 || (item[0] != '\'' && item[0] != '"') {
		return false, "", false
	}
	if len(item) < 2 || item[len(item)-1] != item[0] {
		return false, "", true
	}
	return true, item[1 : len(item)-1], true
}

// expandStringBytes turns a quoted-string item's inner text back into raw
// character bytes, re-expanding the ",32," placeholder lexicalCleanup
// substituted for embedded spaces.
func expandStringBytes(inner string) []byte {
	var out []byte
	for i := 0; i < len(inner); {
		if strings.HasPrefix(inner[i:], ",32,") {
			out = append(out, 32)
			i += 4
			continue
		}
		out = append(out, inner[i])
		i++
	}
	return out
}
