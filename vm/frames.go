package vm

import "fmt"

// AllocPage takes the lowest numbered free physical page. It returns
// ErrOutOfMemory, leaving the free map untouched, if every page is in use.
func (vm *VM) AllocPage() (int, error) {
	for page := 1; page < len(vm.used); page++ {
		if !vm.used[page] {
			vm.used[page] = true
			vm.log.Debug("page allocated", "page", page)
			return page, nil
		}
	}
	return 0, ErrOutOfMemory
}

// FreePage returns a physical page to the pool. Callers never free page 0
// or an already free page.
func (vm *VM) FreePage(page int) {
	vm.used[page] = false
	vm.log.Debug("page freed", "page", page)
}

// FreePages counts the free physical pages.
func (vm *VM) FreePages() int {
	count := 0
	for _, used := range vm.used {
		if !used {
			count++
		}
	}
	return count
}

// PageUsed reports whether physical page is allocated.
func (vm *VM) PageUsed(page int) bool {
	return vm.used[page]
}

// PageTable returns the physical page holding proc's page table, or 0 if
// proc does not exist. Out of range process numbers also yield 0.
func (vm *VM) PageTable(proc int) int {
	if proc < 0 || proc >= len(vm.tables) {
		return 0
	}
	return int(vm.tables[proc])
}

// entry reads entry i of the page table stored in physical page table.
func (vm *VM) entry(table, i int) int {
	return int(vm.memory.read(vm.memory.address(table, i)))
}

func (vm *VM) setEntry(table, i, page int) {
	vm.memory.write(vm.memory.address(table, i), byte(page))
}

func (vm *VM) checkProc(proc int) error {
	if proc < 0 || proc >= len(vm.tables) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidProcess, proc, len(vm.tables))
	}
	return nil
}
