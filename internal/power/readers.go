// internal/power/readers.go
package power

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FixedReader always reports the same voltage (bench setups, tests).
type FixedReader float64

func (f FixedReader) ReadVolts(context.Context) (float64, error) {
	return float64(f), nil
}

// SysfsReader reads a Linux power_supply voltage_now attribute (microvolts).
type SysfsReader struct {
	Path string
}

func (r SysfsReader) ReadVolts(context.Context) (float64, error) {
	if r.Path == "" {
		return 0, errors.New("sysfs battery: path required")
	}

	raw, err := os.ReadFile(r.Path)
	if err != nil {
		return 0, err
	}

	uv, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sysfs battery: %s: %w", r.Path, err)
	}
	return float64(uv) / 1e6, nil
}
