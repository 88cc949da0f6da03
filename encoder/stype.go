package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeStore packs SB/SH/SW: "mnem rs2, imm(rs1)" where rs2 is the
// value register and the immediate splits across bits [11:5] and
// [4:0], the inverse of the decoder's immS reconstruction (spec §4.C,
// §4.E).
func encodeStore(inst *parser.Instruction, funct3 uint32) (uint32, error) {
	if len(inst.Operands) != 2 {
		return 0, operandCountError(inst, 2)
	}
	rs2, err := parseRegister(inst.Operands[0], inst)
	if err != nil {
		return 0, err
	}
	imm, rs1, err := parseMemOperand(inst.Operands[1], inst)
	if err != nil {
		return 0, err
	}
	if !fitsSigned(imm, 12) {
		return 0, rangeError(inst, imm, 12)
	}

	u := uint32(imm) & 0xFFF
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	word := hi<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		funct3<<12 | lo<<7 | opStore
	return word, nil
}
