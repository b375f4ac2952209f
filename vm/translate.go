package vm

import "fmt"

// Translate maps a virtual address of proc to the physical page backing
// it. An unmapped virtual page is a *PageFaultError; nothing is allocated
// on a fault.
func (vm *VM) Translate(proc, vaddr int) (int, error) {
	if err := vm.checkProc(proc); err != nil {
		return 0, err
	}
	table := vm.PageTable(proc)
	if table == 0 {
		return 0, fmt.Errorf("translate: %w: %d", ErrProcessNotFound, proc)
	}

	virtualPage := vaddr >> vm.memory.pageShift
	if vaddr < 0 || virtualPage >= vm.cfg.PageCount {
		return 0, &PageFaultError{Proc: proc, VAddr: vaddr}
	}
	page := vm.entry(table, virtualPage)
	if page == 0 {
		vm.log.Debug("page fault", "proc", proc, "vaddr", vaddr, "virtual_page", virtualPage)
		return 0, &PageFaultError{Proc: proc, VAddr: vaddr}
	}
	return page, nil
}

// physAddr translates vaddr and adds its page offset.
func (vm *VM) physAddr(proc, vaddr int) (int, error) {
	page, err := vm.Translate(proc, vaddr)
	if err != nil {
		return 0, err
	}
	offset := vaddr & (vm.cfg.PageSize - 1)
	return vm.memory.address(page, offset), nil
}

// Store writes the low byte of value at vaddr in proc's address space and
// returns the physical address written.
func (vm *VM) Store(proc, vaddr, value int) (int, error) {
	addr, err := vm.physAddr(proc, vaddr)
	if err != nil {
		return 0, err
	}
	vm.memory.write(addr, byte(value))
	return addr, nil
}

// Load reads the byte at vaddr in proc's address space along with the
// physical address it came from.
func (vm *VM) Load(proc, vaddr int) (byte, int, error) {
	addr, err := vm.physAddr(proc, vaddr)
	if err != nil {
		return 0, 0, err
	}
	return vm.memory.read(addr), addr, nil
}
