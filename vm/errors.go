package vm

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfMemory     = errors.New("out of memory: no free physical page")
	ErrPageTableFull   = errors.New("page table full")
	ErrProcessNotFound = errors.New("no such process")
	ErrInvalidProcess  = errors.New("process number out of range")
	ErrPageFault       = errors.New("page fault")
	ErrBadCommand      = errors.New("bad command")
)

// PageFaultError reports a translation of an unmapped virtual page.
type PageFaultError struct {
	Proc  int
	VAddr int
}

func (e *PageFaultError) Error() string {
	return fmt.Sprintf("PAGE FAULT: proc %d, vaddr %d", e.Proc, e.VAddr)
}

func (e *PageFaultError) Is(target error) bool {
	return target == ErrPageFault
}
