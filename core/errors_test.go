package core_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/core"
)

func TestStageErrorMessages(t *testing.T) {
	c := qt.New(t)

	cause := errors.New("vulkan error: initialization failed")

	instanceErr := &core.InstanceError{Op: "vk.CreateInstance()", Err: cause}
	c.Assert(instanceErr.Error(), qt.Equals, "instance: vk.CreateInstance(): vulkan error: initialization failed")
	c.Assert(instanceErr.Unwrap(), qt.Equals, cause)

	surfaceErr := &core.SurfaceError{Err: cause}
	c.Assert(surfaceErr.Error(), qt.Equals, "surface: vulkan error: initialization failed")

	capabilityErr := &core.CapabilityError{Device: "TestGPU", Op: "vk.GetPhysicalDeviceSurfaceFormats()", Err: cause}
	c.Assert(capabilityErr.Error(), qt.Equals, "capability query: TestGPU: vk.GetPhysicalDeviceSurfaceFormats(): vulkan error: initialization failed")

	logicalErr := &core.LogicalDeviceError{Op: "vk.CreateDevice()", Err: cause}
	c.Assert(logicalErr.Error(), qt.Equals, "logical device: vk.CreateDevice(): vulkan error: initialization failed")
	c.Assert(logicalErr.Unwrap(), qt.Equals, cause)
}

func TestNoSuitableDeviceErrorListsReasons(t *testing.T) {
	c := qt.New(t)

	err := &core.NoSuitableDeviceError{Rejected: []core.RejectedDevice{
		{Name: "DeviceA", Reason: "missing required device extensions"},
		{Name: "DeviceB", Reason: "no supported present modes"},
	}}
	c.Assert(err.Error(), qt.Equals,
		"no suitable device: DeviceA: missing required device extensions; DeviceB: no supported present modes")
}
