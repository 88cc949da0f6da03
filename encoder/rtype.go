package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeRType packs ADD/SUB/AND/OR/XOR/SLL/SRL/SRA/SLT/SLTU: "mnem rd,
// rs1, rs2" into the R-format word (spec §4.C, §4.E).
func encodeRType(inst *parser.Instruction, entry rEntry) (uint32, error) {
	if len(inst.Operands) != 3 {
		return 0, operandCountError(inst, 3)
	}
	rd, err := parseRegister(inst.Operands[0], inst)
	if err != nil {
		return 0, err
	}
	rs1, err := parseRegister(inst.Operands[1], inst)
	if err != nil {
		return 0, err
	}
	rs2, err := parseRegister(inst.Operands[2], inst)
	if err != nil {
		return 0, err
	}

	word := entry.funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		entry.funct3<<12 | uint32(rd)<<7 | opOp
	return word, nil
}
