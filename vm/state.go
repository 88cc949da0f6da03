package vm

// DriverState is the simulator driver's state machine (spec §4.F):
// Idle -> Loaded -> Running -> Halted | Error, with reset returning to
// Idle from any state.
type DriverState int

const (
	StateIdle DriverState = iota
	StateLoaded
	StateRunning
	StateHalted
	StateError
)

func (s DriverState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoaded:
		return "Loaded"
	case StateRunning:
		return "Running"
	case StateHalted:
		return "Halted"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// HaltReason distinguishes why Run/Step left the Running state.
type HaltReason int

const (
	HaltNone HaltReason = iota
	HaltEnvironmentCall
	HaltBudgetExhausted
	HaltPastEndOfProgram
)

func (r HaltReason) String() string {
	switch r {
	case HaltNone:
		return "none"
	case HaltEnvironmentCall:
		return "ecall/ebreak"
	case HaltBudgetExhausted:
		return "budget exhausted"
	case HaltPastEndOfProgram:
		return "pc past end of program"
	default:
		return "unknown"
	}
}

// VM is the complete simulator: CPU registers/PC, memory, and the driver
// state machine described in spec §4.F.
type VM struct {
	CPU    *CPU
	Memory *Memory
	State  DriverState

	// ProgramWords is the length, in words, of the most recently loaded
	// program. Used to detect "PC walks off the end of the program"
	// (spec §9, Open Question -- this repo treats it as a clean Halted
	// transition).
	ProgramWords int

	// RunBudget bounds Run's instruction count (spec §6, default 10,000).
	RunBudget int

	LastError  error
	HaltReason HaltReason

	Trace *ExecutionTrace
	Stats *Statistics
}

// NewVM creates a VM with default-sized memory, in the Idle state.
func NewVM() *VM {
	return &VM{
		CPU:       NewCPU(),
		Memory:    NewMemory(),
		State:     StateIdle,
		RunBudget: DefaultRunBudget,
		Trace:     NewExecutionTrace(256),
		Stats:     NewStatistics(),
	}
}

// Reset returns the VM to the Idle state: zeroed registers, zeroed PC,
// cleared memory, cleared trace. Any → Idle (spec §4.F).
func (v *VM) Reset() {
	v.CPU.Reset()
	v.Memory.Reset()
	v.State = StateIdle
	v.ProgramWords = 0
	v.LastError = nil
	v.HaltReason = HaltNone
	v.Trace.Clear()
	v.Stats.Reset()
}

// LoadWords places assembled words at address 0 and transitions
// Idle -> Loaded (spec §4.F: "load(program_text) ... writes words into
// memory, resets PC and registers").
func (v *VM) LoadWords(words []uint32) error {
	v.CPU.Reset()
	v.Memory.Reset()
	v.Trace.Clear()
	v.Stats.Reset()

	for i, w := range words {
		if err := v.Memory.WriteWord(uint32(i*4), w); err != nil {
			return err
		}
	}
	v.ProgramWords = len(words)
	v.State = StateLoaded
	v.LastError = nil
	v.HaltReason = HaltNone
	return nil
}

// StepResult is returned by Step: a snapshot of observable state after
// executing (or attempting to execute) exactly one instruction.
type StepResult struct {
	Snapshot
	Err error
}

// Step executes exactly one instruction and appends a trace entry (spec
// §4.F, §6). Loaded/Halted -> Running -> (Running | Halted | Error).
func (v *VM) Step() StepResult {
	if v.State == StateError {
		return StepResult{Snapshot: v.Snapshot(), Err: v.LastError}
	}
	if v.State == StateHalted {
		// ECALL/EBREAK set the halted flag; no further fetches (§4.D).
		return StepResult{Snapshot: v.Snapshot()}
	}

	if v.pastEndOfProgram() {
		v.State = StateHalted
		v.HaltReason = HaltPastEndOfProgram
		return StepResult{Snapshot: v.Snapshot()}
	}

	v.State = StateRunning

	pc := v.CPU.PC
	word, err := v.Memory.ReadWord(pc)
	if err != nil {
		return v.fail(err)
	}

	inst, err := Decode(pc, word)
	if err != nil {
		return v.fail(err)
	}

	var before [32]uint32
	before = v.CPU.Registers

	if err := Execute(v, inst); err != nil {
		return v.fail(err)
	}

	v.CPU.IncrementCycles(1)
	v.Stats.Record(inst.Op)

	var writes []RegisterWrite
	for i := 1; i < 32; i++ {
		if v.CPU.Registers[i] != before[i] {
			writes = append(writes, RegisterWrite{Index: i, Old: before[i], New: v.CPU.Registers[i]})
		}
	}
	v.Trace.Append(TraceEntry{
		PC:       pc,
		Word:     word,
		Mnemonic: inst.Op.Mnemonic(),
		Writes:   writes,
	})

	if v.State == StateHalted {
		v.HaltReason = HaltEnvironmentCall
	}

	return StepResult{Snapshot: v.Snapshot()}
}

func (v *VM) fail(err error) StepResult {
	v.State = StateError
	v.LastError = err
	return StepResult{Snapshot: v.Snapshot(), Err: err}
}

func (v *VM) pastEndOfProgram() bool {
	return v.ProgramWords > 0 && v.CPU.PC >= uint32(v.ProgramWords*4)
}

// RunResult is returned by Run: the final snapshot plus whether the run
// ended in a clean halt, an error, or budget exhaustion.
type RunResult struct {
	Snapshot
	HaltReason HaltReason
	Err        error
}

// Run steps the VM until it leaves the Running state, a clean halt, an
// error, or its instruction budget is exhausted (spec §4.F, §5: "run is
// a tight loop that returns only on halt, error, or budget exhaustion").
func (v *VM) Run(maxInstructions int) RunResult {
	if maxInstructions <= 0 {
		maxInstructions = v.RunBudget
	}

	for i := 0; i < maxInstructions; i++ {
		res := v.Step()
		if v.State != StateRunning {
			return RunResult{Snapshot: res.Snapshot, HaltReason: v.HaltReason, Err: res.Err}
		}
	}

	v.HaltReason = HaltBudgetExhausted
	return RunResult{Snapshot: v.Snapshot(), HaltReason: HaltBudgetExhausted}
}

// RegisterWrite records one register mutation performed by an executed
// instruction (spec §3: "Execution trace entry").
type RegisterWrite struct {
	Index int
	Old   uint32
	New   uint32
}

// Snapshot is the observable state returned by Step/Run/snapshot (spec
// §6): PC, all 32 registers, halt status, instruction count, and recent
// trace.
type Snapshot struct {
	PC                  uint32
	Registers           [32]uint32
	State               DriverState
	HaltReason          HaltReason
	InstructionsExecuted uint64
	RecentTrace         []TraceEntry
}

// Snapshot captures the VM's current observable state.
func (v *VM) Snapshot() Snapshot {
	return Snapshot{
		PC:                   v.CPU.PC,
		Registers:            v.CPU.Registers,
		State:                v.State,
		HaltReason:           v.HaltReason,
		InstructionsExecuted: v.CPU.Cycles,
		RecentTrace:          v.Trace.Recent(0),
	}
}
