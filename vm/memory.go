package vm

// memory is the simulated RAM: PageCount pages of PageSize bytes each.
type memory struct {
	Ram       []byte
	pageShift uint
	pageSize  int
}

// address composes a physical address from a page number and an offset.
func (mem *memory) address(page, offset int) int {
	return page<<mem.pageShift | offset
}

func (mem *memory) write(addr int, value byte) {
	mem.Ram[addr] = value
}

func (mem *memory) read(addr int) byte {
	return mem.Ram[addr]
}

func (mem *memory) clearPage(page int) {
	start := mem.address(page, 0)
	clear(mem.Ram[start : start+mem.pageSize])
}

func newMemory(cfg Config) memory {
	return memory{
		Ram:       make([]byte, cfg.MemorySize()),
		pageShift: cfg.PageShift(),
		pageSize:  cfg.PageSize,
	}
}
