package vm

// Format identifies which of the six RV32I instruction encodings a word
// uses (spec §4.C).
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

// Op names every instruction this simulator executes.
type Op int

const (
	OpADD Op = iota
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpJAL
	OpJALR
	OpLUI
	OpAUIPC
	OpECALL
	OpEBREAK
)

var opNames = map[Op]string{
	OpADD: "add", OpSUB: "sub", OpSLL: "sll", OpSLT: "slt", OpSLTU: "sltu",
	OpXOR: "xor", OpSRL: "srl", OpSRA: "sra", OpOR: "or", OpAND: "and",
	OpADDI: "addi", OpSLTI: "slti", OpSLTIU: "sltiu", OpXORI: "xori",
	OpORI: "ori", OpANDI: "andi", OpSLLI: "slli", OpSRLI: "srli", OpSRAI: "srai",
	OpLB: "lb", OpLH: "lh", OpLW: "lw", OpLBU: "lbu", OpLHU: "lhu",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
	OpBEQ: "beq", OpBNE: "bne", OpBLT: "blt", OpBGE: "bge", OpBLTU: "bltu", OpBGEU: "bgeu",
	OpJAL: "jal", OpJALR: "jalr", OpLUI: "lui", OpAUIPC: "auipc",
	OpECALL: "ecall", OpEBREAK: "ebreak",
}

// Mnemonic returns the lower-case assembly mnemonic for op.
func (op Op) Mnemonic() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "???"
}

// Instruction is the decoder's output: the decoded operation, its
// format, operand register indices, and reconstructed sign-extended
// immediate (spec §4.C).
type Instruction struct {
	Address uint32
	Word    uint32
	Format  Format
	Op      Op
	Rd      int
	Rs1     int
	Rs2     int
	Imm     int32
}

func bits(word uint32, hi, lo uint) uint32 {
	mask := uint32(1)<<(hi-lo+1) - 1
	return (word >> lo) & mask
}

func signExtend(value uint32, signBit uint) int32 {
	shift := 31 - signBit
	return int32(value<<shift) >> shift
}

// immI reconstructs the I-format immediate: word[31:20] -> imm[11:0],
// sign-extended from bit 11.
func immI(word uint32) int32 {
	return signExtend(bits(word, 31, 20), 11)
}

// immS reconstructs the S-format immediate: word[31:25] -> imm[11:5],
// word[11:7] -> imm[4:0], sign-extended from bit 11.
func immS(word uint32) int32 {
	raw := bits(word, 31, 25)<<5 | bits(word, 11, 7)
	return signExtend(raw, 11)
}

// immB reconstructs the B-format immediate per spec's scattered bit
// table: word[31]->imm[12], word[7]->imm[11], word[30:25]->imm[10:5],
// word[11:8]->imm[4:1], imm[0]=0. Sign-extended from bit 12.
func immB(word uint32) int32 {
	raw := bits(word, 31, 31)<<12 |
		bits(word, 7, 7)<<11 |
		bits(word, 30, 25)<<5 |
		bits(word, 11, 8)<<1
	return signExtend(raw, 12)
}

// immU reconstructs the U-format immediate: word[31:12] -> imm[31:12],
// imm[11:0]=0. Already a full 32-bit value; no sign extension needed.
func immU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// immJ reconstructs the J-format immediate per spec's scattered bit
// table: word[31]->imm[20], word[19:12]->imm[19:12], word[20]->imm[11],
// word[30:21]->imm[10:1], imm[0]=0. Sign-extended from bit 20.
func immJ(word uint32) int32 {
	raw := bits(word, 31, 31)<<20 |
		bits(word, 19, 12)<<12 |
		bits(word, 20, 20)<<11 |
		bits(word, 30, 21)<<1
	return signExtend(raw, 20)
}

type opKey struct {
	opcode uint32
	funct3 uint32
	funct7 uint32
}

var rOps = map[opKey]Op{
	{OpcodeOp, 0x0, 0x00}: OpADD,
	{OpcodeOp, 0x0, 0x20}: OpSUB,
	{OpcodeOp, 0x1, 0x00}: OpSLL,
	{OpcodeOp, 0x2, 0x00}: OpSLT,
	{OpcodeOp, 0x3, 0x00}: OpSLTU,
	{OpcodeOp, 0x4, 0x00}: OpXOR,
	{OpcodeOp, 0x5, 0x00}: OpSRL,
	{OpcodeOp, 0x5, 0x20}: OpSRA,
	{OpcodeOp, 0x6, 0x00}: OpOR,
	{OpcodeOp, 0x7, 0x00}: OpAND,
}

// iOpImm maps (OpImm opcode, funct3) -> Op for the non-shift register
// immediate instructions.
var iOpImm = map[uint32]Op{
	0x0: OpADDI,
	0x2: OpSLTI,
	0x3: OpSLTIU,
	0x4: OpXORI,
	0x6: OpORI,
	0x7: OpANDI,
}

var iLoad = map[uint32]Op{
	0x0: OpLB,
	0x1: OpLH,
	0x2: OpLW,
	0x4: OpLBU,
	0x5: OpLHU,
}

var sStore = map[uint32]Op{
	0x0: OpSB,
	0x1: OpSH,
	0x2: OpSW,
}

var bBranch = map[uint32]Op{
	0x0: OpBEQ,
	0x1: OpBNE,
	0x4: OpBLT,
	0x5: OpBGE,
	0x6: OpBLTU,
	0x7: OpBGEU,
}

// Decode classifies a 32-bit word into a decoded Instruction, or returns
// an IllegalInstruction ExecutionError if opcode/funct3/funct7 do not
// match any RV32I encoding (spec §4.C, §7).
func Decode(pc, word uint32) (*Instruction, error) {
	opcode := bits(word, 6, 0)
	funct3 := bits(word, 14, 12)
	funct7 := bits(word, 31, 25)
	rd := int(bits(word, 11, 7))
	rs1 := int(bits(word, 19, 15))
	rs2 := int(bits(word, 24, 20))

	base := &Instruction{Address: pc, Word: word, Rd: rd, Rs1: rs1, Rs2: rs2}

	switch opcode {
	case OpcodeOp:
		op, ok := rOps[opKey{opcode, funct3, funct7}]
		if !ok {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op = FormatR, op
		return base, nil

	case OpcodeOpImm:
		base.Imm = immI(word)
		if funct3 == 0x1 || funct3 == 0x5 {
			// SLLI/SRLI/SRAI: shift amount is the low 5 bits of the
			// I-immediate; funct7 (bit 30 specifically) distinguishes
			// logical from arithmetic right shift.
			base.Format = FormatI
			base.Imm = int32(bits(word, 24, 20))
			switch {
			case funct3 == 0x1 && funct7 == 0x00:
				base.Op = OpSLLI
			case funct3 == 0x5 && funct7 == 0x00:
				base.Op = OpSRLI
			case funct3 == 0x5 && funct7 == 0x20:
				base.Op = OpSRAI
			default:
				return nil, illegal(pc, word)
			}
			return base, nil
		}
		op, ok := iOpImm[funct3]
		if !ok {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op = FormatI, op
		return base, nil

	case OpcodeLoad:
		op, ok := iLoad[funct3]
		if !ok {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op, base.Imm = FormatI, op, immI(word)
		return base, nil

	case OpcodeJALR:
		if funct3 != 0 {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op, base.Imm = FormatI, OpJALR, immI(word)
		return base, nil

	case OpcodeStore:
		op, ok := sStore[funct3]
		if !ok {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op, base.Imm = FormatS, op, immS(word)
		return base, nil

	case OpcodeBranch:
		op, ok := bBranch[funct3]
		if !ok {
			return nil, illegal(pc, word)
		}
		base.Format, base.Op, base.Imm = FormatB, op, immB(word)
		return base, nil

	case OpcodeLUI:
		base.Format, base.Op, base.Imm = FormatU, OpLUI, immU(word)
		return base, nil

	case OpcodeAUIPC:
		base.Format, base.Op, base.Imm = FormatU, OpAUIPC, immU(word)
		return base, nil

	case OpcodeJAL:
		base.Format, base.Op, base.Imm = FormatJ, OpJAL, immJ(word)
		return base, nil

	case OpcodeSystem:
		if rd != 0 || rs1 != 0 || funct3 != 0 {
			return nil, illegal(pc, word)
		}
		base.Format = FormatI
		switch bits(word, 31, 20) {
		case 0x0:
			base.Op = OpECALL
		case 0x1:
			base.Op = OpEBREAK
		default:
			return nil, illegal(pc, word)
		}
		return base, nil

	default:
		return nil, illegal(pc, word)
	}
}

func illegal(pc, word uint32) error {
	return newExecutionError(IllegalInstruction, pc, word, "unrecognized opcode/funct3/funct7")
}
