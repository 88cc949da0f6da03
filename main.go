// Command rv32emu assembles and runs RV32I programs: a direct-run mode,
// a line debugger, and a tcell/tview TUI debugger, following the
// teacher's flag-driven CLI layout.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rv32toolkit/rv32emu/config"
	"github.com/rv32toolkit/rv32emu/debugger"
	"github.com/rv32toolkit/rv32emu/loader"
	"github.com/rv32toolkit/rv32emu/parser"
	"github.com/rv32toolkit/rv32emu/vm"
)

func main() {
	var (
		debugFlag   = flag.Bool("debug", false, "run the line debugger instead of executing directly")
		tuiFlag     = flag.Bool("tui", false, "run the full-screen TUI debugger instead of executing directly")
		dumpSymbols = flag.Bool("dump-symbols", false, "print the assembler's symbol table and exit")
		traceFlag   = flag.Bool("trace", false, "write the execution trace to the configured trace file after the run")
		statsFlag   = flag.Bool("stats", false, "write execution statistics to the configured stats file after the run")
		memorySize  = flag.Uint("memory-size", 0, "memory size in bytes (0 = use config default)")
		runBudget   = flag.Int("run-budget", 0, "maximum instructions per run (0 = use config default)")
		configPath  = flag.String("config", "", "path to config.toml (default: platform config directory)")
		verboseFlag = flag.Bool("verbose", false, "print a short execution summary after a direct run")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source.s>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	sourcePath := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *memorySize != 0 {
		cfg.Execution.MemorySize = *memorySize
	}
	if *runBudget != 0 {
		cfg.Execution.RunBudget = *runBudget
	}

	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-supplied source file
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", sourcePath, err)
		os.Exit(1)
	}

	program, err := parser.Parse(string(source), sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *dumpSymbols {
		dumpSymbolTable(program.SymbolTable)
		return
	}

	machine := vm.NewVM()
	machine.Memory = vm.NewMemorySized(int(cfg.Execution.MemorySize))
	machine.RunBudget = cfg.Execution.RunBudget
	machine.Trace = vm.NewExecutionTrace(cfg.Trace.MaxEntries)

	if err := loader.LoadSource(machine, string(source), sourcePath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	switch {
	case *tuiFlag:
		dbg := newDebuggerFor(machine, program)
		if err := debugger.RunTUI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "tui: %v\n", err)
			os.Exit(1)
		}
		return

	case *debugFlag:
		dbg := newDebuggerFor(machine, program)
		if err := debugger.RunCLI(dbg); err != nil {
			fmt.Fprintf(os.Stderr, "debugger: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result := machine.Run(cfg.Execution.RunBudget)

	if *traceFlag {
		if err := writeTrace(machine, cfg.Trace.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "trace: %v\n", err)
		}
	}
	if *statsFlag {
		if err := writeStats(machine, cfg.Statistics.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		}
	}

	if *verboseFlag {
		fmt.Printf("halted: %s (pc=0x%08X, instructions=%d)\n",
			result.HaltReason, result.PC, result.InstructionsExecuted)
	}

	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", result.Err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// newDebuggerFor builds a Debugger preloaded with the assembled
// program's symbol table and a source-line map for the "list" command.
func newDebuggerFor(machine *vm.VM, program *parser.Program) *debugger.Debugger {
	dbg := debugger.NewDebugger(machine)

	symbols := make(map[string]uint32)
	for _, name := range program.SymbolTable.Names() {
		if addr, ok := program.SymbolTable.Lookup(name); ok {
			symbols[name] = addr
		}
	}
	dbg.LoadSymbols(symbols)

	sourceMap := make(map[uint32]string)
	for _, inst := range program.Instructions {
		sourceMap[inst.Address] = inst.RawLine
	}
	dbg.LoadSourceMap(sourceMap)

	return dbg
}

// dumpSymbolTable prints every assembler label and its address, sorted
// by address, for tooling/editor integration.
func dumpSymbolTable(symbols *parser.SymbolTable) {
	names := symbols.Names()
	sort.Slice(names, func(i, j int) bool {
		ai, _ := symbols.Lookup(names[i])
		aj, _ := symbols.Lookup(names[j])
		return ai < aj
	})

	for _, name := range names {
		addr, _ := symbols.Lookup(name)
		fmt.Printf("0x%08X  %s\n", addr, name)
	}
}

func writeTrace(machine *vm.VM, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-configured trace output path
	if err != nil {
		return err
	}
	defer f.Close()

	for _, entry := range machine.Trace.Recent(0) {
		fmt.Fprintf(f, "0x%08X: %-8s (0x%08X)", entry.PC, entry.Mnemonic, entry.Word)
		for _, w := range entry.Writes {
			fmt.Fprintf(f, "  x%d: 0x%08X -> 0x%08X", w.Index, w.Old, w.New)
		}
		fmt.Fprintln(f)
	}
	return nil
}

func writeStats(machine *vm.VM, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-configured stats output path
	if err != nil {
		return err
	}
	defer f.Close()

	return machine.Stats.ExportJSON(f)
}
