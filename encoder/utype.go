package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeUType packs LUI/AUIPC: "mnem rd, imm", where imm occupies bits
// [31:12] directly (spec §4.C, §4.E).
func encodeUType(inst *parser.Instruction, opcode uint32) (uint32, error) {
	if len(inst.Operands) != 2 {
		return 0, operandCountError(inst, 2)
	}
	rd, err := parseRegister(inst.Operands[0], inst)
	if err != nil {
		return 0, err
	}
	imm, err := parseImmediate(inst.Operands[1], inst)
	if err != nil {
		return 0, err
	}
	if imm < 0 || imm > 0xFFFFF {
		return 0, rangeError(inst, imm, 20)
	}

	word := uint32(imm)<<12 | uint32(rd)<<7 | opcode
	return word, nil
}
