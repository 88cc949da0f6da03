package vm

// CPU represents the RV32I processor state: 32 general-purpose registers
// plus a program counter. x0 is not stored specially here -- the register
// accessors enforce the hardwired-zero contract (see GetRegister and
// SetRegister in this file).
type CPU struct {
	// Registers holds x0-x31. x0 is kept in the array for simplicity but
	// every read/write goes through GetRegister/SetRegister, which enforce
	// the hardwired-zero contract so callers never observe a stale x0.
	Registers [32]uint32

	// PC is the program counter: address of the next instruction to fetch.
	PC uint32

	// Cycles counts executed instructions; snapshots report it as
	// InstructionsExecuted.
	Cycles uint64
}

// Register ABI names, in register-number order (x0-x31).
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// NewCPU creates and initializes a new CPU instance.
func NewCPU() *CPU {
	return &CPU{}
}

// Reset resets the CPU to its initial state: all registers zero, PC zero.
func (c *CPU) Reset() {
	for i := range c.Registers {
		c.Registers[i] = 0
	}
	c.PC = 0
	c.Cycles = 0
}

// GetRegister returns the value of register i (0-31). Register 0 always
// reads as zero regardless of any prior write.
func (c *CPU) GetRegister(i int) uint32 {
	if i == 0 {
		return 0
	}
	return c.Registers[i]
}

// SetRegister writes value to register i. Writes to register 0 are
// silently discarded, matching the ISA's hardwired-zero register.
func (c *CPU) SetRegister(i int, value uint32) {
	if i == 0 {
		return
	}
	c.Registers[i] = value
}

// IncrementPC advances the program counter by one instruction word.
func (c *CPU) IncrementPC() {
	c.PC += 4
}

// Branch sets the program counter to an absolute address.
func (c *CPU) Branch(address uint32) {
	c.PC = address
}

// IncrementCycles advances the executed-instruction counter.
func (c *CPU) IncrementCycles(n uint64) {
	c.Cycles += n
}

// RegisterName returns the ABI name for register index i, or "?" if out
// of range.
func RegisterName(i int) string {
	if i < 0 || i > 31 {
		return "?"
	}
	return abiNames[i]
}
