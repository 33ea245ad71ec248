package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each Physical Device
	// along with info about those devices
	PhysicalDevicesInfo() []PhysicalDeviceInfo

	// AvailableDevices returns handles of Physical Devices
	// from the Vulkan API
	AvailableDevices() []vk.PhysicalDevice

	// SetSurface sets the window surface that devices
	// are probed and selected against
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// ProfileDevice queries everything selection needs to know
	// about one physical device
	ProfileDevice(vk.PhysicalDevice) (DeviceProfile, error)

	// SelectDevice picks the first enumerated device that satisfies
	// the given required device extensions and the surface
	SelectDevice(requiredExtensions []string) (vk.PhysicalDevice, DeviceProfile, error)

	// Extensions returns instance extensions that were requested
	Extensions() []string

	// Instance returns internal vk.Instance
	Instance() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Device describes a logical device and the queues created with it.
// The present queue may alias the graphics queue when both roles
// resolved to the same queue family.
type Device interface {
	// GraphicsQueue returns the queue command buffers are submitted to
	GraphicsQueue() vk.Queue

	// PresentQueue returns the queue images are presented on
	PresentQueue() vk.Queue

	// QueuesAliased reports whether both queue handles refer
	// to the same underlying queue
	QueuesAliased() bool

	// Plan returns the queue plan the device was created from
	Plan() QueuePlan

	// Destroy destroys internal members
	Destroy()
}

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	APIVersion    int
	DeviceType    string
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}
