package parser

import "testing"

func TestParse_SimpleProgram(t *testing.T) {
	src := "addi x1, x0, 5\naddi x2, x0, 10\n"
	prog, err := Parse(src, "test.s")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(prog.Instructions))
	}
	if prog.Instructions[0].Mnemonic != "addi" {
		t.Errorf("Mnemonic = %q, want addi", prog.Instructions[0].Mnemonic)
	}
	if prog.Instructions[1].Address != 4 {
		t.Errorf("second instruction address = %d, want 4", prog.Instructions[1].Address)
	}
}

func TestParse_LabelsRecordedAtFollowingAddress(t *testing.T) {
	src := "start:\n  addi x1, x0, 1\nloop: addi x2, x0, 2\n  jal x0, loop\n"
	prog, err := Parse(src, "test.s")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	addr, ok := prog.SymbolTable.Lookup("start")
	if !ok || addr != 0 {
		t.Errorf("start = %d, ok=%v, want 0, true", addr, ok)
	}
	addr, ok = prog.SymbolTable.Lookup("loop")
	if !ok || addr != 4 {
		t.Errorf("loop = %d, ok=%v, want 4, true", addr, ok)
	}
	if len(prog.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(prog.Instructions))
	}
}

func TestParse_CommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a full comment line\n\naddi x1, x0, 1  # trailing comment\n\n"
	prog, err := Parse(src, "test.s")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(prog.Instructions))
	}
}

func TestParse_DuplicateLabel(t *testing.T) {
	src := "foo: addi x1, x0, 1\nfoo: addi x2, x0, 2\n"
	_, err := Parse(src, "test.s")
	if err == nil {
		t.Fatal("expected a duplicate label error")
	}
	list, ok := err.(*ErrorList)
	if !ok || !list.HasErrors() {
		t.Fatalf("got %v, want an *ErrorList", err)
	}
	if list.Errors[0].Kind != ErrorDuplicateLabel {
		t.Errorf("Kind = %v, want ErrorDuplicateLabel", list.Errors[0].Kind)
	}
}

func TestParse_MissingInstructionAfterLabel(t *testing.T) {
	// A bare label declaration is legal; nothing to error on.
	prog, err := Parse("start:\n", "test.s")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Instructions) != 0 {
		t.Errorf("got %d instructions, want 0", len(prog.Instructions))
	}
	if _, ok := prog.SymbolTable.Lookup("start"); !ok {
		t.Error("expected label 'start' to be recorded")
	}
}

func TestParse_OperandsSplitAroundMemoryParens(t *testing.T) {
	prog, err := Parse("lw x1, 4(x2)\n", "test.s")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	inst := prog.Instructions[0]
	if len(inst.Operands) != 2 {
		t.Fatalf("got %d operands, want 2: %v", len(inst.Operands), inst.Operands)
	}
	if inst.Operands[1] != "4(x2)" {
		t.Errorf("second operand = %q, want 4(x2)", inst.Operands[1])
	}
}

func TestLookupRegister(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"x0", 0, true},
		{"zero", 0, true},
		{"x31", 31, true},
		{"t6", 31, true},
		{"a0", 10, true},
		{"sp", 2, true},
		{"ra", 1, true},
		{"fp", 8, true},
		{"s0", 8, true},
		{"x32", 0, false},
		{"bogus", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupRegister(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("LookupRegister(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestSymbolTable_DuplicateDefine(t *testing.T) {
	st := NewSymbolTable()
	pos := Position{Filename: "f.s", Line: 1}
	if err := st.Define("label", 0, pos); err != nil {
		t.Fatalf("first Define() error = %v", err)
	}
	err := st.Define("label", 4, pos)
	if err == nil {
		t.Fatal("expected duplicate-label error on redefinition")
	}
}

func TestSymbolTable_Names(t *testing.T) {
	st := NewSymbolTable()
	pos := Position{Filename: "f.s", Line: 1}
	if err := st.Define("a", 0, pos); err != nil {
		t.Fatalf("Define(a) error = %v", err)
	}
	if err := st.Define("b", 4, pos); err != nil {
		t.Fatalf("Define(b) error = %v", err)
	}
	names := st.Names()
	if len(names) != 2 {
		t.Fatalf("got %d names, want 2", len(names))
	}
}

func TestErrorKind_String(t *testing.T) {
	cases := map[ErrorKind]string{
		ErrorSyntax:               "SyntaxError",
		ErrorUnknownMnemonic:      "UnknownMnemonic",
		ErrorUnknownRegister:      "UnknownRegister",
		ErrorUnknownLabel:         "UnknownLabel",
		ErrorDuplicateLabel:       "DuplicateLabel",
		ErrorImmediateOutOfRange:  "ImmediateOutOfRange",
		ErrorOperandCountMismatch: "OperandCountMismatch",
		ErrorKind(99):             "UnknownError",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(kind), got, want)
		}
	}
}
