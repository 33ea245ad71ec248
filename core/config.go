package core

// Configuration defines the global bootstrap configuration
type Configuration struct {
	Time   TimeConfiguration
	Window WindowConfiguration
	Device DeviceConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between window event polls,
	// in milliseconds
	EventPollDelay int
}

// WindowConfiguration describes the window a surface is created for
type WindowConfiguration struct {
	Title string

	Width  uint32
	Height uint32
}

// InstanceConfiguration is used when creating a Vulkan instance
type InstanceConfiguration struct {
	// DebugMode requests the standard validation layer
	// and the debug report extension on top of whatever is configured
	DebugMode bool

	Extensions []string
	Layers     []string
}

// DeviceConfiguration is used when selecting a physical device
// and creating a logical device on it
type DeviceConfiguration struct {
	// Extensions a device has to support to be considered,
	// also enabled on the logical device
	Extensions []string
}
