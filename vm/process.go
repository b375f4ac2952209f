package vm

import "fmt"

// NewProcess allocates a page table for proc and maps pageCount data
// pages into virtual pages 0..pageCount-1.
//
// Failing to get the page table leaves everything untouched. Running out
// part way through the data pages does not roll back: the pages mapped so
// far stay allocated and the error is returned.
//
// Creating a process that already exists overwrites its page table
// pointer. The old page table and its data pages stay allocated and can
// no longer be freed.
func (vm *VM) NewProcess(proc, pageCount int) error {
	if err := vm.checkProc(proc); err != nil {
		return err
	}
	if pageCount < 0 {
		return fmt.Errorf("%w: negative page count %d", ErrBadCommand, pageCount)
	}

	table, err := vm.AllocPage()
	if err != nil {
		return fmt.Errorf("new process %d: page table: %w", proc, err)
	}
	vm.memory.clearPage(table)

	if old := vm.tables[proc]; old != 0 {
		vm.log.Debug("process already exists, leaking its pages", "proc", proc, "old_table", old)
	}
	vm.tables[proc] = byte(table)
	vm.log.Debug("process created", "proc", proc, "table", table)

	for i := 0; i < pageCount; i++ {
		if i >= vm.cfg.PageCount {
			return fmt.Errorf("new process %d: %w after %d pages", proc, ErrPageTableFull, i)
		}
		page, err := vm.AllocPage()
		if err != nil {
			return fmt.Errorf("new process %d: data page %d: %w", proc, i, err)
		}
		vm.setEntry(table, i, page)
	}
	return nil
}

// AddPages grows proc by count data pages, mapped into consecutive
// virtual pages starting at the first unmapped entry of its page table.
// As with NewProcess, pages mapped before a failure stay mapped.
func (vm *VM) AddPages(proc, count int) error {
	if err := vm.checkProc(proc); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative page count %d", ErrBadCommand, count)
	}
	table := vm.PageTable(proc)
	if table == 0 {
		return fmt.Errorf("add pages: %w: %d", ErrProcessNotFound, proc)
	}

	first := -1
	for i := 0; i < vm.cfg.PageCount; i++ {
		if vm.entry(table, i) == 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return fmt.Errorf("add pages to process %d: %w", proc, ErrPageTableFull)
	}

	for n := 0; n < count; n++ {
		i := first + n
		if i >= vm.cfg.PageCount || vm.entry(table, i) != 0 {
			return fmt.Errorf("add pages to process %d: %w after %d pages", proc, ErrPageTableFull, n)
		}
		page, err := vm.AllocPage()
		if err != nil {
			return fmt.Errorf("add pages to process %d: virtual page %d: %w", proc, i, err)
		}
		vm.setEntry(table, i, page)
	}
	vm.log.Debug("process grown", "proc", proc, "first", first, "count", count)
	return nil
}

// KillProcess frees every data page mapped by proc, then its page table,
// and forgets the process. Killing a process that does not exist does
// nothing.
func (vm *VM) KillProcess(proc int) error {
	if err := vm.checkProc(proc); err != nil {
		return err
	}
	table := vm.PageTable(proc)
	if table == 0 {
		vm.log.Debug("kill of missing process ignored", "proc", proc)
		return nil
	}

	for i := 0; i < vm.cfg.PageCount; i++ {
		if page := vm.entry(table, i); page != 0 {
			vm.FreePage(page)
		}
	}
	vm.FreePage(table)
	vm.tables[proc] = 0
	vm.log.Debug("process killed", "proc", proc, "table", table)
	return nil
}
