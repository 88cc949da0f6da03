package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeBranch packs BEQ/BNE/BLT/BGE/BLTU/BGEU: "mnem rs1, rs2, target".
// target is a label or a bare signed offset, resolved to a PC-relative
// byte displacement that must be a multiple of 2 and fit in 13 signed
// bits, the inverse of the decoder's immB reconstruction (spec §4.C,
// §4.E).
func encodeBranch(inst *parser.Instruction, funct3 uint32, symbols *parser.SymbolTable) (uint32, error) {
	if len(inst.Operands) != 3 {
		return 0, operandCountError(inst, 3)
	}
	rs1, err := parseRegister(inst.Operands[0], inst)
	if err != nil {
		return 0, err
	}
	rs2, err := parseRegister(inst.Operands[1], inst)
	if err != nil {
		return 0, err
	}
	offset, err := resolvePCRelative(inst.Operands[2], inst, symbols)
	if err != nil {
		return 0, err
	}
	if offset%2 != 0 {
		return 0, rangeError(inst, offset, 13)
	}
	if !fitsSigned(offset, 13) {
		return 0, rangeError(inst, offset, 13)
	}

	u := uint32(offset) & 0x1FFF
	bit12 := (u >> 12) & 0x1
	bit11 := (u >> 11) & 0x1
	bits10_5 := (u >> 5) & 0x3F
	bits4_1 := (u >> 1) & 0xF

	word := bit12<<31 | bits10_5<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		funct3<<12 | bits4_1<<8 | bit11<<7 | opBranch
	return word, nil
}
