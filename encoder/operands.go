package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rv32toolkit/rv32emu/parser"
)

// parseRegister resolves a register operand (numeric xN or ABI name) to
// its index, or an UnknownRegister error (spec §4.E, §7).
func parseRegister(operand string, inst *parser.Instruction) (int, error) {
	idx, ok := parser.LookupRegister(operand)
	if !ok {
		return 0, &parser.Error{
			Pos:     inst.Pos,
			Kind:    parser.ErrorUnknownRegister,
			Message: fmt.Sprintf("unknown register %q", operand),
		}
	}
	return idx, nil
}

// parseImmediate parses a decimal (optionally signed), hexadecimal
// (0x...), or binary (0b...) integer literal (spec §4.E).
func parseImmediate(operand string, inst *parser.Instruction) (int64, error) {
	s := strings.TrimSpace(operand)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	var value uint64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		value, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		value, err = strconv.ParseUint(s[2:], 2, 64)
	default:
		value, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, &parser.Error{
			Pos:     inst.Pos,
			Kind:    parser.ErrorSyntax,
			Message: fmt.Sprintf("invalid immediate %q", operand),
		}
	}

	result := int64(value)
	if neg {
		result = -result
	}
	return result, nil
}

// parseMemOperand splits a load/store memory operand of the form
// "imm(reg)" (spec §4.E) into its immediate and base register.
func parseMemOperand(operand string, inst *parser.Instruction) (imm int64, reg int, err error) {
	open := strings.IndexByte(operand, '(')
	shut := strings.IndexByte(operand, ')')
	if open < 0 || shut < 0 || shut < open {
		return 0, 0, &parser.Error{
			Pos:     inst.Pos,
			Kind:    parser.ErrorSyntax,
			Message: fmt.Sprintf("expected imm(reg) memory operand, got %q", operand),
		}
	}
	immText := strings.TrimSpace(operand[:open])
	if immText == "" {
		immText = "0"
	}
	regText := strings.TrimSpace(operand[open+1 : shut])

	imm, err = parseImmediate(immText, inst)
	if err != nil {
		return 0, 0, err
	}
	reg, err = parseRegister(regText, inst)
	if err != nil {
		return 0, 0, err
	}
	return imm, reg, nil
}

// fitsSigned reports whether value fits in a signed field of width bits.
func fitsSigned(value int64, bits uint) bool {
	lo := -(int64(1) << (bits - 1))
	hi := int64(1)<<(bits-1) - 1
	return value >= lo && value <= hi
}

func rangeError(inst *parser.Instruction, value int64, bits uint) error {
	return &parser.Error{
		Pos:  inst.Pos,
		Kind: parser.ErrorImmediateOutOfRange,
		Message: fmt.Sprintf("immediate %d does not fit in a signed %d-bit field",
			value, bits),
	}
}

func operandCountError(inst *parser.Instruction, want int) error {
	return &parser.Error{
		Pos:  inst.Pos,
		Kind: parser.ErrorOperandCountMismatch,
		Message: fmt.Sprintf("%s expects %d operand(s), got %d",
			inst.Mnemonic, want, len(inst.Operands)),
	}
}

func unknownMnemonicError(inst *parser.Instruction) error {
	return &parser.Error{
		Pos:     inst.Pos,
		Kind:    parser.ErrorUnknownMnemonic,
		Message: fmt.Sprintf("unknown mnemonic %q", inst.Mnemonic),
	}
}

func unknownLabelError(inst *parser.Instruction, name string) error {
	return &parser.Error{
		Pos:     inst.Pos,
		Kind:    parser.ErrorUnknownLabel,
		Message: fmt.Sprintf("unknown label %q", name),
	}
}

// resolvePCRelative resolves a branch/jump target operand to a signed
// byte offset from inst.Address. The operand is either a label already
// recorded in symbols, or a bare numeric offset (spec §4.E).
func resolvePCRelative(operand string, inst *parser.Instruction, symbols *parser.SymbolTable) (int64, error) {
	s := strings.TrimSpace(operand)
	if s == "" {
		return 0, unknownLabelError(inst, operand)
	}
	if s[0] == '-' || s[0] == '+' || (s[0] >= '0' && s[0] <= '9') {
		return parseImmediate(s, inst)
	}
	addr, ok := symbols.Lookup(s)
	if !ok {
		return 0, unknownLabelError(inst, s)
	}
	return int64(addr) - int64(inst.Address), nil
}
