package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeJAL packs "jal rd, target". target is a label or a bare signed
// offset, resolved to a PC-relative byte displacement that must be a
// multiple of 2 and fit in 21 signed bits, the inverse of the
// decoder's immJ reconstruction (spec §4.C, §4.E).
func encodeJAL(inst *parser.Instruction, symbols *parser.SymbolTable) (uint32, error) {
	if len(inst.Operands) != 2 {
		return 0, operandCountError(inst, 2)
	}
	rd, err := parseRegister(inst.Operands[0], inst)
	if err != nil {
		return 0, err
	}
	offset, err := resolvePCRelative(inst.Operands[1], inst, symbols)
	if err != nil {
		return 0, err
	}
	if offset%2 != 0 {
		return 0, rangeError(inst, offset, 21)
	}
	if !fitsSigned(offset, 21) {
		return 0, rangeError(inst, offset, 21)
	}

	u := uint32(offset) & 0x1FFFFF
	bit20 := (u >> 20) & 0x1
	bits19_12 := (u >> 12) & 0xFF
	bit11 := (u >> 11) & 0x1
	bits10_1 := (u >> 1) & 0x3FF

	word := bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 |
		uint32(rd)<<7 | opJAL
	return word, nil
}
