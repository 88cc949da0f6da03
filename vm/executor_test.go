package vm

import "testing"

func newExecVM() *VM {
	return NewVM()
}

func TestExecute_Arithmetic(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 10)
	v.CPU.SetRegister(2, 3)

	if err := Execute(v, &Instruction{Op: OpADD, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("add error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 13 {
		t.Errorf("add result = %d, want 13", got)
	}

	if err := Execute(v, &Instruction{Op: OpSUB, Rd: 4, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("sub error = %v", err)
	}
	if got := v.CPU.GetRegister(4); got != 7 {
		t.Errorf("sub result = %d, want 7", got)
	}
}

func TestExecute_Subtract_Underflow_Wraps(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0)
	v.CPU.SetRegister(2, 1)
	if err := Execute(v, &Instruction{Op: OpSUB, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("sub error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 0xFFFFFFFF {
		t.Errorf("0-1 = 0x%08X, want 0xFFFFFFFF", got)
	}
}

func TestExecute_WriteToX0Discarded(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 5)
	v.CPU.SetRegister(2, 5)
	if err := Execute(v, &Instruction{Op: OpADD, Rd: 0, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("add error = %v", err)
	}
	if got := v.CPU.GetRegister(0); got != 0 {
		t.Errorf("x0 = %d, want 0", got)
	}
}

func TestExecute_ShiftsMaskAmount(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 1)
	v.CPU.SetRegister(2, 33) // masked to 1

	if err := Execute(v, &Instruction{Op: OpSLL, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("sll error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 2 {
		t.Errorf("1<<(33&0x1F) = %d, want 2", got)
	}
}

func TestExecute_SRA_SignExtends(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0x80000000) // INT32_MIN
	v.CPU.SetRegister(2, 4)
	if err := Execute(v, &Instruction{Op: OpSRA, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("sra error = %v", err)
	}
	want := uint32(0xF8000000) // sign bit copied into the top 4 bits
	if got := v.CPU.GetRegister(3); got != want {
		t.Errorf("sra result = 0x%08X, want 0x%08X", got, want)
	}
}

func TestExecute_SLT_Signed_vs_SLTU_Unsigned(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0xFFFFFFFF) // -1 signed, huge unsigned
	v.CPU.SetRegister(2, 1)

	if err := Execute(v, &Instruction{Op: OpSLT, Rd: 3, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("slt error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 1 {
		t.Errorf("slt(-1, 1) = %d, want 1 (signed -1 < 1)", got)
	}

	if err := Execute(v, &Instruction{Op: OpSLTU, Rd: 4, Rs1: 1, Rs2: 2}); err != nil {
		t.Fatalf("sltu error = %v", err)
	}
	if got := v.CPU.GetRegister(4); got != 0 {
		t.Errorf("sltu(0xFFFFFFFF, 1) = %d, want 0 (unsigned 0xFFFFFFFF >= 1)", got)
	}
}

func TestExecute_Immediate(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 5)
	if err := Execute(v, &Instruction{Op: OpADDI, Rd: 2, Rs1: 1, Imm: -10}); err != nil {
		t.Fatalf("addi error = %v", err)
	}
	if got := int32(v.CPU.GetRegister(2)); got != -5 {
		t.Errorf("addi result = %d, want -5", got)
	}
}

func TestExecute_LoadStore_RoundTrip(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0x1000) // base
	v.CPU.SetRegister(2, 0xABCD1234)

	if err := Execute(v, &Instruction{Op: OpSW, Rs1: 1, Rs2: 2, Imm: 0}); err != nil {
		t.Fatalf("sw error = %v", err)
	}
	if err := Execute(v, &Instruction{Op: OpLW, Rd: 3, Rs1: 1, Imm: 0}); err != nil {
		t.Fatalf("lw error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 0xABCD1234 {
		t.Errorf("lw result = 0x%08X, want 0xABCD1234", got)
	}
}

func TestExecute_LoadByte_SignAndZeroExtend(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0x2000)
	if err := v.Memory.WriteByte(0x2000, 0xFF); err != nil {
		t.Fatalf("WriteByte() error = %v", err)
	}

	if err := Execute(v, &Instruction{Op: OpLB, Rd: 2, Rs1: 1, Imm: 0}); err != nil {
		t.Fatalf("lb error = %v", err)
	}
	if got := v.CPU.GetRegister(2); got != 0xFFFFFFFF {
		t.Errorf("lb(0xFF) = 0x%08X, want 0xFFFFFFFF (sign-extended)", got)
	}

	if err := Execute(v, &Instruction{Op: OpLBU, Rd: 3, Rs1: 1, Imm: 0}); err != nil {
		t.Fatalf("lbu error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 0xFF {
		t.Errorf("lbu(0xFF) = 0x%08X, want 0x000000FF (zero-extended)", got)
	}
}

func TestExecute_LoadHalf_SignAndZeroExtend(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, 0x2000)
	if err := v.Memory.WriteHalf(0x2000, 0x8000); err != nil {
		t.Fatalf("WriteHalf() error = %v", err)
	}

	if err := Execute(v, &Instruction{Op: OpLH, Rd: 2, Rs1: 1, Imm: 0}); err != nil {
		t.Fatalf("lh error = %v", err)
	}
	if got := int32(v.CPU.GetRegister(2)); got != -32768 {
		t.Errorf("lh(0x8000) = %d, want -32768", got)
	}

	if err := Execute(v, &Instruction{Op: OpLHU, Rd: 3, Rs1: 1, Imm: 0}); err != nil {
		t.Fatalf("lhu error = %v", err)
	}
	if got := v.CPU.GetRegister(3); got != 0x8000 {
		t.Errorf("lhu(0x8000) = 0x%08X, want 0x8000", got)
	}
}

func TestExecute_LoadOutOfBounds(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(1, uint32(v.Memory.Size()))
	err := Execute(v, &Instruction{Op: OpLW, Rd: 2, Rs1: 1, Imm: 0})
	if err == nil {
		t.Fatal("expected a memory bounds error")
	}
	ee, ok := err.(*ExecutionError)
	if !ok || ee.Kind != MemoryBounds {
		t.Errorf("got %v, want a MemoryBounds ExecutionError", err)
	}
}

func TestExecute_Branch_TakenAndNotTaken(t *testing.T) {
	v := newExecVM()
	v.CPU.PC = 0x100
	v.CPU.SetRegister(1, 5)
	v.CPU.SetRegister(2, 5)

	if err := Execute(v, &Instruction{Op: OpBEQ, Rs1: 1, Rs2: 2, Imm: 16, Address: 0x100}); err != nil {
		t.Fatalf("beq error = %v", err)
	}
	if v.CPU.PC != 0x110 {
		t.Errorf("taken branch PC = 0x%X, want 0x110", v.CPU.PC)
	}

	v.CPU.PC = 0x100
	v.CPU.SetRegister(2, 6)
	if err := Execute(v, &Instruction{Op: OpBEQ, Rs1: 1, Rs2: 2, Imm: 16, Address: 0x100}); err != nil {
		t.Fatalf("beq error = %v", err)
	}
	if v.CPU.PC != 0x104 {
		t.Errorf("not-taken branch PC = 0x%X, want 0x104 (fall through)", v.CPU.PC)
	}
}

func TestExecute_JAL_LinksAndJumps(t *testing.T) {
	v := newExecVM()
	if err := Execute(v, &Instruction{Op: OpJAL, Rd: 1, Imm: 0x100, Address: 0x200}); err != nil {
		t.Fatalf("jal error = %v", err)
	}
	if got := v.CPU.GetRegister(1); got != 0x204 {
		t.Errorf("ra = 0x%X, want 0x204", got)
	}
	if v.CPU.PC != 0x300 {
		t.Errorf("PC = 0x%X, want 0x300", v.CPU.PC)
	}
}

func TestExecute_JALR_ClearsLSB(t *testing.T) {
	v := newExecVM()
	v.CPU.SetRegister(2, 0x401) // odd target
	if err := Execute(v, &Instruction{Op: OpJALR, Rd: 1, Rs1: 2, Imm: 0, Address: 0x200}); err != nil {
		t.Fatalf("jalr error = %v", err)
	}
	if v.CPU.PC != 0x400 {
		t.Errorf("PC = 0x%X, want 0x400 (LSB cleared)", v.CPU.PC)
	}
	if got := v.CPU.GetRegister(1); got != 0x204 {
		t.Errorf("ra = 0x%X, want 0x204", got)
	}
}

func TestExecute_LUI_AUIPC(t *testing.T) {
	v := newExecVM()
	if err := Execute(v, &Instruction{Op: OpLUI, Rd: 1, Imm: int32(0x12345000)}); err != nil {
		t.Fatalf("lui error = %v", err)
	}
	if got := v.CPU.GetRegister(1); got != 0x12345000 {
		t.Errorf("lui result = 0x%08X, want 0x12345000", got)
	}

	if err := Execute(v, &Instruction{Op: OpAUIPC, Rd: 2, Imm: 0x1000, Address: 0x2000}); err != nil {
		t.Fatalf("auipc error = %v", err)
	}
	if got := v.CPU.GetRegister(2); got != 0x3000 {
		t.Errorf("auipc result = 0x%08X, want 0x3000", got)
	}
}

func TestExecute_ECALL_Halts(t *testing.T) {
	v := newExecVM()
	v.State = StateRunning
	if err := Execute(v, &Instruction{Op: OpECALL}); err != nil {
		t.Fatalf("ecall error = %v", err)
	}
	if v.State != StateHalted {
		t.Errorf("State = %v, want StateHalted", v.State)
	}
}
