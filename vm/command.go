package vm

import (
	"fmt"
	"strconv"
	"strings"
)

type op string

// commands
const (
	OP_PFM op = "pfm" /* print the page free map */
	OP_PPT op = "ppt" /* print a process page table */
	OP_NP  op = "np"  /* new process */
	OP_AP  op = "ap"  /* add pages to a process */
	OP_KP  op = "kp"  /* kill process */
	OP_SB  op = "sb"  /* store byte */
	OP_LB  op = "lb"  /* load byte */
)

var arity = map[op]int{
	OP_PFM: 0,
	OP_PPT: 1,
	OP_NP:  2,
	OP_AP:  2,
	OP_KP:  1,
	OP_SB:  3,
	OP_LB:  2,
}

// Command is one decoded engine operation.
type Command struct {
	Op   op
	Args []int
}

func (c Command) String() string {
	parts := []string{string(c.Op)}
	for _, arg := range c.Args {
		parts = append(parts, strconv.Itoa(arg))
	}
	return strings.Join(parts, " ")
}

// nextCommand decodes the command at the head of a token stream such as
// "np 0 2 sb 0 0 42" and returns the tokens that follow it. A bad command
// still consumes its arguments; one cut short by the end of the stream
// consumes everything.
func nextCommand(tokens []string) (Command, []string, error) {
	name := op(strings.ToLower(tokens[0]))
	tokens = tokens[1:]
	n, ok := arity[name]
	if !ok {
		return Command{}, tokens, fmt.Errorf("%w: unknown command %q", ErrBadCommand, name)
	}
	if n > len(tokens) {
		return Command{}, nil, fmt.Errorf("%w: %s needs %d arguments, got %d", ErrBadCommand, name, n, len(tokens))
	}

	cmd := Command{Op: name, Args: make([]int, n)}
	for j, tok := range tokens[:n] {
		arg, err := strconv.Atoi(tok)
		if err != nil {
			return Command{}, tokens[n:], fmt.Errorf("%w: %s argument %d: %q is not a number", ErrBadCommand, name, j+1, tok)
		}
		cmd.Args[j] = arg
	}
	return cmd, tokens[n:], nil
}

// Exec runs a single command, writing its output to the VM's stdout.
func (vm *VM) Exec(cmd Command) error {
	vm.log.Debug("exec", "command", cmd.String())
	if n, ok := arity[cmd.Op]; ok && len(cmd.Args) != n {
		return fmt.Errorf("%w: %s needs %d arguments, got %d", ErrBadCommand, cmd.Op, n, len(cmd.Args))
	}

	switch cmd.Op {
	case OP_PFM:
		return vm.RenderFreeMap(vm.stdout)

	case OP_PPT:
		return vm.RenderPageTable(vm.stdout, cmd.Args[0])

	case OP_NP:
		return vm.NewProcess(cmd.Args[0], cmd.Args[1])

	case OP_AP:
		return vm.AddPages(cmd.Args[0], cmd.Args[1])

	case OP_KP:
		return vm.KillProcess(cmd.Args[0])

	case OP_SB:
		proc, vaddr := cmd.Args[0], cmd.Args[1]
		value := byte(cmd.Args[2])
		addr, err := vm.Store(proc, vaddr, int(value))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(vm.stdout, "Store proc %d: %d => %d, value=%d\n", proc, vaddr, addr, value)
		return err

	case OP_LB:
		proc, vaddr := cmd.Args[0], cmd.Args[1]
		value, addr, err := vm.Load(proc, vaddr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(vm.stdout, "Load proc %d: %d => %d, value=%d\n", proc, vaddr, addr, value)
		return err
	}
	return fmt.Errorf("%w: unknown command %q", ErrBadCommand, cmd.Op)
}

// Run decodes and executes a token stream in order. Every failure is
// reported on the VM's stderr and the remaining commands still run. It
// returns the number of failures.
func (vm *VM) Run(tokens []string) int {
	failures := 0
	for len(tokens) > 0 {
		var cmd Command
		var err error
		cmd, tokens, err = nextCommand(tokens)
		if err == nil {
			err = vm.Exec(cmd)
		}
		if err != nil {
			vm.report(err)
			failures++
		}
	}
	return failures
}

func (vm *VM) report(err error) {
	fmt.Fprintf(vm.stderr, "error: %v\n", err)
}
