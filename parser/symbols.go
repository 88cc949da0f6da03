package parser

import "fmt"

// SymbolTable maps label names to the byte address of the instruction
// immediately following the label declaration (spec §3). Labels are
// case-sensitive and must be unique within a program.
type SymbolTable struct {
	addresses map[string]uint32
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addresses: make(map[string]uint32)}
}

// Define records a label at address, returning a DuplicateLabel error if
// the name is already defined (spec §3: "duplicate definition is a
// fatal assemble-time error").
func (st *SymbolTable) Define(name string, address uint32, pos Position) error {
	if _, exists := st.addresses[name]; exists {
		return NewError(pos, ErrorDuplicateLabel, fmt.Sprintf("label %q already defined", name))
	}
	st.addresses[name] = address
	return nil
}

// Lookup resolves a label to its address.
func (st *SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := st.addresses[name]
	return addr, ok
}

// Names returns every defined label, for symbol-table dumps.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.addresses))
	for name := range st.addresses {
		names = append(names, name)
	}
	return names
}
