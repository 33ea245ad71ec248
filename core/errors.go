package core

import (
	"fmt"
	"strings"
)

// Every bootstrap stage fails with its own error type, so callers
// can tell which stage went wrong without parsing messages.
// The commands decide whether a failure is fatal, the library never
// terminates the process.

// InstanceError reports a failure while creating the Vulkan instance
// or enumerating physical devices on it.
type InstanceError struct {
	Op  string
	Err error
}

func (e *InstanceError) Error() string {
	return "instance: " + e.Op + ": " + e.Err.Error()
}

func (e *InstanceError) Unwrap() error {
	return e.Err
}

// SurfaceError reports a failure while creating the window surface.
type SurfaceError struct {
	Err error
}

func (e *SurfaceError) Error() string {
	return "surface: " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// CapabilityError reports a failed capability query against
// a physical device during profiling.
type CapabilityError struct {
	Device string
	Op     string
	Err    error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability query: %s: %s: %s", e.Device, e.Op, e.Err.Error())
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// RejectedDevice records why one enumerated device did not qualify.
type RejectedDevice struct {
	Name   string
	Reason string
}

// NoSuitableDeviceError reports that no enumerated physical device
// satisfied every selection predicate.
type NoSuitableDeviceError struct {
	Rejected []RejectedDevice
}

func (e *NoSuitableDeviceError) Error() string {
	if len(e.Rejected) == 0 {
		return "no suitable device: no physical devices enumerated"
	}
	reasons := make([]string, len(e.Rejected))
	for idx, rejected := range e.Rejected {
		reasons[idx] = rejected.Name + ": " + rejected.Reason
	}
	return "no suitable device: " + strings.Join(reasons, "; ")
}

// LogicalDeviceError reports a failure while creating the logical
// device or resolving its queues.
type LogicalDeviceError struct {
	Op  string
	Err error
}

func (e *LogicalDeviceError) Error() string {
	return "logical device: " + e.Op + ": " + e.Err.Error()
}

func (e *LogicalDeviceError) Unwrap() error {
	return e.Err
}
