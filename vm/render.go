package vm

import (
	"fmt"
	"io"
	"strings"
)

const freeMapColumns = 16

// RenderFreeMap draws the free page map, one character per physical page,
// '#' for allocated and '.' for free, sixteen pages per row.
func (vm *VM) RenderFreeMap(w io.Writer) error {
	var b strings.Builder
	b.WriteString("--- PAGE FREE MAP ---\n")
	for i, used := range vm.used {
		if used {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%freeMapColumns == 0 {
			b.WriteByte('\n')
		}
	}
	if len(vm.used)%freeMapColumns != 0 {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderPageTable lists the mapped virtual pages of proc as
// "vv -> pp" in hex. A process that does not exist lists nothing.
func (vm *VM) RenderPageTable(w io.Writer, proc int) error {
	if err := vm.checkProc(proc); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- PROCESS %d PAGE TABLE ---\n", proc)
	if table := vm.PageTable(proc); table != 0 {
		for i := 0; i < vm.cfg.PageCount; i++ {
			if page := vm.entry(table, i); page != 0 {
				fmt.Fprintf(&b, "%02x -> %02x\n", i, page)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
