package encoder

// Opcode/funct3/funct7 values, mirroring vm's decode constants -- the
// encoder is the bit-field inverse of the decoder (spec §4.E).
const (
	opLoad   uint32 = 0x03
	opImm    uint32 = 0x13
	opAUIPC  uint32 = 0x17
	opStore  uint32 = 0x23
	opOp     uint32 = 0x33
	opLUI    uint32 = 0x37
	opBranch uint32 = 0x63
	opJALR   uint32 = 0x67
	opJAL    uint32 = 0x6F
	opSystem uint32 = 0x73
)

type rEntry struct {
	funct3, funct7 uint32
}

var rTypeTable = map[string]rEntry{
	"add":  {0x0, 0x00},
	"sub":  {0x0, 0x20},
	"sll":  {0x1, 0x00},
	"slt":  {0x2, 0x00},
	"sltu": {0x3, 0x00},
	"xor":  {0x4, 0x00},
	"srl":  {0x5, 0x00},
	"sra":  {0x5, 0x20},
	"or":   {0x6, 0x00},
	"and":  {0x7, 0x00},
}

var iArithTable = map[string]uint32{
	"addi":  0x0,
	"slti":  0x2,
	"sltiu": 0x3,
	"xori":  0x4,
	"ori":   0x6,
	"andi":  0x7,
}

var iShiftTable = map[string]rEntry{
	"slli": {0x1, 0x00},
	"srli": {0x5, 0x00},
	"srai": {0x5, 0x20},
}

var loadTable = map[string]uint32{
	"lb":  0x0,
	"lh":  0x1,
	"lw":  0x2,
	"lbu": 0x4,
	"lhu": 0x5,
}

var storeTable = map[string]uint32{
	"sb": 0x0,
	"sh": 0x1,
	"sw": 0x2,
}

var branchTable = map[string]uint32{
	"beq":  0x0,
	"bne":  0x1,
	"blt":  0x4,
	"bge":  0x5,
	"bltu": 0x6,
	"bgeu": 0x7,
}
