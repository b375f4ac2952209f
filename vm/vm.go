package vm

import (
	"io"
	"log/slog"
	"os"
)

// VM is one simulated RAM image together with its page bookkeeping.
// It is not safe for concurrent use; commands run one at a time.
type VM struct {
	cfg    Config
	memory memory

	// used[i] is true if physical page i is allocated. Page 0 is
	// always marked used.
	used []bool
	// tables[proc] is the physical page holding proc's page table, or
	// 0 if proc does not exist.
	tables []byte

	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

type Option func(*VM)

// WithOutput sets the writers for the command transcript and for error
// reports.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(vm *VM) {
		vm.stdout = stdout
		vm.stderr = stderr
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(vm *VM) {
		vm.log = logger
	}
}

// NewVM builds an initialized VM. The config must already be valid.
func NewVM(cfg Config, opts ...Option) *VM {
	vm := &VM{
		cfg:    cfg,
		memory: newMemory(cfg),
		used:   make([]bool, cfg.PageCount),
		tables: make([]byte, cfg.MaxProcesses()),
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.Initialize()
	return vm
}

// Initialize zeroes RAM and all bookkeeping, then reserves page 0.
func (vm *VM) Initialize() {
	clear(vm.memory.Ram)
	clear(vm.used)
	clear(vm.tables)
	vm.used[0] = true
	vm.log.Debug("memory initialized",
		"pages", vm.cfg.PageCount, "page_size", vm.cfg.PageSize, "processes", len(vm.tables))
}

func (vm *VM) Config() Config {
	return vm.cfg
}
