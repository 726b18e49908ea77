// internal/status/encode.go
package status

// Encode converts a Snapshot into a full device status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot, deviceName string) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotFailedStage] = s.FailedStage
	regs[SlotBatteryMillivolts] = s.BatteryMillivolts
	regs[SlotSleepMinutes] = s.SleepMinutes

	// Slots 5..10 are RESERVED → left as zero

	name := EncodeASCII(deviceName, SlotDeviceNameSlots)
	copy(regs[SlotDeviceNameStart:SlotDeviceNameEnd+1], name)

	return regs
}

// EncodeASCII packs up to 2*n printable ASCII characters into n registers.
// Each register stores two bytes in big-endian order; unused bytes are zero.
// Non-printable bytes are replaced with '?'.
func EncodeASCII(s string, n int) []uint16 {
	if n <= 0 {
		return nil
	}
	out := make([]uint16, n)

	b := []byte(s)
	if len(b) > 2*n {
		b = b[:2*n]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < 2*n; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
