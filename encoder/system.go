package encoder

import "github.com/rv32toolkit/rv32emu/parser"

// encodeSystem packs ECALL ("imm" = 0) and EBREAK ("imm" = 1), neither
// of which take operands (spec §4.C, §4.E).
func encodeSystem(inst *parser.Instruction, imm uint32) (uint32, error) {
	if len(inst.Operands) != 0 {
		return 0, operandCountError(inst, 0)
	}
	return imm<<20 | opSystem, nil
}
