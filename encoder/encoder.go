// Package encoder turns a parsed assembly program into RV32I machine
// words. It is the bit-field inverse of the vm package's decoder:
// each encodeXType function packs the same fields that the
// corresponding decoder branch unpacks (spec §4.C, §4.E).
package encoder

import (
	"github.com/rv32toolkit/rv32emu/parser"
)

// Assemble runs the two-pass assembler described in spec §4.E,F and
// §6: parser.Parse builds the symbol table and per-line instruction
// list (pass 1), then Assemble walks that list resolving operands and
// labels into machine words (pass 2). All encoding errors are
// collected; if any occurred, Assemble returns nil words and a
// non-nil *parser.ErrorList.
func Assemble(text, filename string) ([]uint32, error) {
	program, err := parser.Parse(text, filename)
	if err != nil {
		return nil, err
	}

	words := make([]uint32, 0, len(program.Instructions))
	var errs parser.ErrorList
	for _, inst := range program.Instructions {
		word, encErr := encodeInstruction(inst, program.SymbolTable)
		if encErr != nil {
			if pe, ok := encErr.(*parser.Error); ok {
				errs.AddError(pe)
			} else {
				errs.AddError(&parser.Error{
					Pos:     inst.Pos,
					Kind:    parser.ErrorSyntax,
					Message: encErr.Error(),
				})
			}
			continue
		}
		words = append(words, word)
	}

	if errs.HasErrors() {
		return nil, &errs
	}
	return words, nil
}

// encodeInstruction dispatches a single parsed instruction to the
// format-specific encoder selected by its mnemonic.
func encodeInstruction(inst *parser.Instruction, symbols *parser.SymbolTable) (uint32, error) {
	mnemonic := inst.Mnemonic

	if entry, ok := rTypeTable[mnemonic]; ok {
		return encodeRType(inst, entry)
	}
	if funct3, ok := iArithTable[mnemonic]; ok {
		return encodeIArith(inst, funct3)
	}
	if entry, ok := iShiftTable[mnemonic]; ok {
		return encodeShiftImm(inst, entry)
	}
	if funct3, ok := loadTable[mnemonic]; ok {
		return encodeLoad(inst, funct3)
	}
	if funct3, ok := storeTable[mnemonic]; ok {
		return encodeStore(inst, funct3)
	}
	if funct3, ok := branchTable[mnemonic]; ok {
		return encodeBranch(inst, funct3, symbols)
	}

	switch mnemonic {
	case "jalr":
		return encodeJALR(inst)
	case "jal":
		return encodeJAL(inst, symbols)
	case "lui":
		return encodeUType(inst, opLUI)
	case "auipc":
		return encodeUType(inst, opAUIPC)
	case "ecall":
		return encodeSystem(inst, 0)
	case "ebreak":
		return encodeSystem(inst, 1)
	}

	return 0, unknownMnemonicError(inst)
}
