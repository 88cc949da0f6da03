package parser

import "strings"

// Instruction is one parsed assembly statement: a mnemonic plus its raw
// operand text, with the byte address it will be assembled to.
type Instruction struct {
	Label    string
	Mnemonic string
	Operands []string
	RawLine  string
	Pos      Position
	Address  uint32
}

// Program is the result of parsing: instructions in program order plus
// the label -> address symbol table built during pass 1 (spec §4.E).
type Program struct {
	Instructions []*Instruction
	SymbolTable  *SymbolTable
}

// Parse runs the assembler's two-pass label collection over input
// (spec §4.E, pass 1): it strips comments and blank lines, assigns
// sequential addresses starting at 0 (incrementing by 4), and records
// every label's address. It returns the list of instructions (still
// holding unresolved label operands) plus the populated symbol table,
// or an *ErrorList if the source has syntax errors.
func Parse(input, filename string) (*Program, error) {
	prog := &Program{SymbolTable: NewSymbolTable()}
	errs := &ErrorList{}

	address := uint32(0)
	lines := strings.Split(input, "\n")

	for lineNo, raw := range lines {
		pos := Position{Filename: filename, Line: lineNo + 1, Column: 1}

		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		label, rest, hasLabel := splitLabelAndRest(line)
		if hasLabel {
			if err := prog.SymbolTable.Define(label, address, pos); err != nil {
				errs.AddError(err.(*Error))
				continue
			}
		}

		if strings.TrimSpace(rest) == "" {
			// A bare label declaration with no instruction on the line.
			continue
		}

		mnemonic, operandText := splitMnemonicAndOperands(rest)
		if mnemonic == "" {
			errs.AddError(NewErrorWithContext(pos, ErrorSyntax, "expected an instruction", strings.TrimSpace(raw)))
			continue
		}

		inst := &Instruction{
			Label:    label,
			Mnemonic: strings.ToLower(mnemonic),
			Operands: splitOperands(operandText),
			RawLine:  strings.TrimRight(raw, "\r"),
			Pos:      pos,
			Address:  address,
		}
		prog.Instructions = append(prog.Instructions, inst)
		address += 4
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return prog, nil
}
