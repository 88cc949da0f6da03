package encoder

import "github.com/rv32toolkit/rv32emu/parser"

func encodeIWord(opcode, funct3 uint32, rd, rs1 int, imm int32) uint32 {
	immField := uint32(imm) & 0xFFF
	return immField<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

// encodeIArith packs ADDI/ANDI/ORI/XORI/SLTI/SLTIU: "mnem rd, rs1, imm"
// into the I-format word, range-checking the 12-bit signed immediate
// (spec §4.C, §4.E).
func encodeIArith(inst *parser.Instruction, funct3 uint32) (uint32, error) {
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
	imm, err := parseImmediate(inst.Operands[2], inst)
	if err != nil {
		return 0, err
	}
	if !fitsSigned(imm, 12) {
		return 0, rangeError(inst, imm, 12)
	}
	return encodeIWord(opImm, funct3, rd, rs1, int32(imm)), nil
}

// encodeShiftImm packs SLLI/SRLI/SRAI: "mnem rd, rs1, shamt", where
// shamt occupies the low 5 bits of the I-immediate field and the
// remaining high bits carry the fixed funct7 that distinguishes logical
// from arithmetic right shift.
func encodeShiftImm(inst *parser.Instruction, entry rEntry) (uint32, error) {
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
	shamt, err := parseImmediate(inst.Operands[2], inst)
	if err != nil {
		return 0, err
	}
	if shamt < 0 || shamt > 31 {
		return 0, rangeError(inst, shamt, 5)
	}
	word := entry.funct7<<25 | uint32(shamt)<<20 | uint32(rs1)<<15 |
		entry.funct3<<12 | uint32(rd)<<7 | opImm
	return word, nil
}

// encodeLoad packs LB/LH/LW/LBU/LHU: "mnem rd, imm(rs1)".
func encodeLoad(inst *parser.Instruction, funct3 uint32) (uint32, error) {
	if len(inst.Operands) != 2 {
		return 0, operandCountError(inst, 2)
	}
	rd, err := parseRegister(inst.Operands[0], inst)
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
	return encodeIWord(opLoad, funct3, rd, rs1, int32(imm)), nil
}

// encodeJALR packs "jalr rd, imm(rs1)".
func encodeJALR(inst *parser.Instruction) (uint32, error) {
	if len(inst.Operands) != 2 {
		return 0, operandCountError(inst, 2)
	}
	rd, err := parseRegister(inst.Operands[0], inst)
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
	return encodeIWord(opJALR, 0x0, rd, rs1, int32(imm)), nil
}
