// internal/status/constants.go
package status

// Device Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the outcome of the last refresh cycle.
const SlotHealthCode = 0

// SlotLastErrorCode holds the error code of the last failed cycle stage.
const SlotLastErrorCode = 1

// SlotFailedStage holds the stage that failed (StageNone on success).
const SlotFailedStage = 2

// SlotBatteryMillivolts holds the battery voltage read during the cycle.
const SlotBatteryMillivolts = 3

// SlotSleepMinutes holds the committed sleep duration.
const SlotSleepMinutes = 4

// ---- RESERVED RANGE ----

// Slots 5–10 are reserved for future use.
const SlotReservedStart = 5
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a fully rendered cycle.
const HealthOK uint16 = 1

// HealthError represents a cycle that rendered nothing.
const HealthError uint16 = 2

// HealthDegraded represents a rendered cycle without a timestamp.
const HealthDegraded uint16 = 3

// ---- STAGE CODES ----

const (
	StageNone    uint16 = 0
	StageConnect uint16 = 1
	StageFetch   uint16 = 2
	StageRender  uint16 = 3
)
