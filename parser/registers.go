package parser

import (
	"strconv"
	"strings"
)

// registerNames maps every accepted spelling of a register operand --
// numeric (x0..x31) and ABI names (spec §4.E) -- to its register index.
var registerNames = buildRegisterNames()

func buildRegisterNames() map[string]int {
	abi := []string{
		"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
		"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
		"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
		"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
	}
	m := make(map[string]int, 64)
	for i, name := range abi {
		m[name] = i
	}
	m["fp"] = 8 // alias for s0
	for i := 0; i < 32; i++ {
		m["x"+strconv.Itoa(i)] = i
	}
	return m
}

// LookupRegister resolves a register operand spelling (case-sensitive,
// per spec §6) to its index 0-31.
func LookupRegister(name string) (int, bool) {
	idx, ok := registerNames[strings.TrimSpace(name)]
	return idx, ok
}
