package vm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"strings"
)

// reference sizing
const (
	DefaultPageSize  = 256
	DefaultPageCount = 64
	DefaultPTPOffset = 64 // offset of the page table pointer table in page 0
)

// Config describes the shape of the simulated RAM.
type Config struct {
	PageSize  int    `json:"page_size"`
	PageCount int    `json:"page_count"`
	PTPOffset int    `json:"ptp_offset"`
	LogLevel  string `json:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		PageSize:  DefaultPageSize,
		PageCount: DefaultPageCount,
		PTPOffset: DefaultPTPOffset,
		LogLevel:  "warn",
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.PageSize <= 0 || c.PageSize&(c.PageSize-1) != 0 {
		return fmt.Errorf("page_size %d is not a power of two", c.PageSize)
	}
	// page numbers are stored in a single byte
	if c.PageCount < 2 || c.PageCount > 256 {
		return fmt.Errorf("page_count %d out of range [2, 256]", c.PageCount)
	}
	if c.PageCount > c.PageSize {
		return fmt.Errorf("page_count %d does not fit in a %d byte page table", c.PageCount, c.PageSize)
	}
	if c.PTPOffset < c.PageCount || c.PTPOffset >= c.PageSize {
		return fmt.Errorf("ptp_offset %d must be in [%d, %d)", c.PTPOffset, c.PageCount, c.PageSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) PageShift() uint {
	return uint(bits.TrailingZeros(uint(c.PageSize)))
}

func (c Config) MemorySize() int {
	return c.PageSize * c.PageCount
}

// MaxProcesses is the number of slots in the page table pointer table.
func (c Config) MaxProcesses() int {
	return c.PageSize - c.PTPOffset
}

// ParseLevel maps a config log level onto a slog level. An empty string
// selects info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", level)
}
