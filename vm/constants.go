package vm

// RV32I base opcodes (word bits 6:0), per the RISC-V base ISA.
const (
	OpcodeLoad   uint32 = 0x03 // LB/LH/LW/LBU/LHU
	OpcodeOpImm  uint32 = 0x13 // ADDI/SLTI/SLTIU/XORI/ORI/ANDI/SLLI/SRLI/SRAI
	OpcodeAUIPC  uint32 = 0x17
	OpcodeStore  uint32 = 0x23 // SB/SH/SW
	OpcodeOp     uint32 = 0x33 // ADD/SUB/SLL/SLT/SLTU/XOR/SRL/SRA/OR/AND
	OpcodeLUI    uint32 = 0x37
	OpcodeBranch uint32 = 0x63 // BEQ/BNE/BLT/BGE/BLTU/BGEU
	OpcodeJALR   uint32 = 0x67
	OpcodeJAL    uint32 = 0x6F
	OpcodeSystem uint32 = 0x73 // ECALL/EBREAK
)

// DefaultRunBudget is the default instruction budget for Run (spec §4.F,
// §6: "the run instruction budget (default 10,000)").
const DefaultRunBudget = 10000
