// Package loader glues an assembled program into a freshly reset VM.
package loader

import (
	"fmt"

	"github.com/rv32toolkit/rv32emu/encoder"
	"github.com/rv32toolkit/rv32emu/vm"
)

// LoadSource assembles text and loads the resulting words into machine,
// leaving the VM in StateLoaded with PC at 0 (spec §4.E,F).
func LoadSource(machine *vm.VM, text, filename string) error {
	words, err := encoder.Assemble(text, filename)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", filename, err)
	}
	return machine.LoadWords(words)
}
