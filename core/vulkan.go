package core

import (
	"errors"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   safeString("vkboot"),
	PEngineName:        safeString("vkboot"),
}

// NewVulkanInstance creates a Vulkan instance
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (Instance, error) {
	if cfg.DebugMode {
		cfg.Layers = append(cfg.Layers, "VK_LAYER_LUNARG_standard_validation")
		cfg.Extensions = append(cfg.Extensions, "VK_EXT_debug_report")
	}

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, &InstanceError{Op: "vk.SetDefaultGetInstanceProcAddr()", Err: err}
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, &InstanceError{Op: "vk.Init()", Err: err}
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     safeStrings(cfg.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, &InstanceError{Op: "vk.CreateInstance()", Err: err}
	}
	vk.InitInstance(instance)

	availableDevices, err := enumerateDevices(instance)
	if err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	return &VulkanInstance{
		configuration:    cfg,
		instance:         instance,
		availableDevices: availableDevices,
	}, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	surface          vk.Surface
	instance         vk.Instance
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, &InstanceError{Op: "vk.EnumeratePhysicalDevices()", Err: err}
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, &InstanceError{Op: "vk.EnumeratePhysicalDevices()", Err: err}
	}
	return availableDevices, nil
}

// PhysicalDevicesInfo implements interface
func (v *VulkanInstance) PhysicalDevicesInfo() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))
	for i := 0; i < len(v.availableDevices); i++ {
		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(v.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory = pdi[i].Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
		}

		// Get general device info
		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(v.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = (int)(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
		pdi[i].APIVersion = (int)(physicalDeviceProperties.ApiVersion)
		pdi[i].DeviceType = deviceTypeString(physicalDeviceProperties.DeviceType)
	}
	return pdi
}

func deviceTypeString(deviceType vk.PhysicalDeviceType) string {
	switch deviceType {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	default:
		return "other"
	}
}

// SetSurface implements interface
func (v *VulkanInstance) SetSurface(pSurface unsafe.Pointer) {
	v.surface = vk.SurfaceFromPointer(uintptr(pSurface))
}

// Surface implements interface
func (v *VulkanInstance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// Instance returns internal vk.Instance
func (v *VulkanInstance) Instance() interface{} {
	return v.instance
}

// Extensions implements interface
func (v *VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// AvailableDevices implements interface
func (v *VulkanInstance) AvailableDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// ProfileDevice implements interface. A surface has to be set first,
// present support and surface capabilities are queried against it.
func (v *VulkanInstance) ProfileDevice(device vk.PhysicalDevice) (DeviceProfile, error) {
	if v.surface == nil {
		return DeviceProfile{}, errors.New("core.ProfileDevice(): no surface set")
	}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()

	profile := DeviceProfile{
		Name: vk.ToString(properties.DeviceName[:]),
	}

	var numExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numExtensions, nil)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.EnumerateDeviceExtensionProperties()", Err: err}
	}
	extensions := make([]vk.ExtensionProperties, numExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &numExtensions, extensions)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.EnumerateDeviceExtensionProperties()", Err: err}
	}
	for _, ext := range extensions {
		ext.Deref()
		profile.Extensions = append(profile.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	var numFormats uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, v.surface, &numFormats, nil)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.GetPhysicalDeviceSurfaceFormats()", Err: err}
	}
	profile.Formats = make([]vk.SurfaceFormat, numFormats)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, v.surface, &numFormats, profile.Formats)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.GetPhysicalDeviceSurfaceFormats()", Err: err}
	}

	var numPresentModes uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, v.surface, &numPresentModes, nil)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.GetPhysicalDeviceSurfacePresentModes()", Err: err}
	}
	profile.PresentModes = make([]vk.PresentMode, numPresentModes)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, v.surface, &numPresentModes, profile.PresentModes)); err != nil {
		return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.GetPhysicalDeviceSurfacePresentModes()", Err: err}
	}

	var numQueueFamilies uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &numQueueFamilies, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, numQueueFamilies)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &numQueueFamilies, queueFamilies)

	for idx := uint32(0); idx < numQueueFamilies; idx++ {
		queueFamilies[idx].Deref()

		var supportsPresent vk.Bool32
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(device, idx, v.surface, &supportsPresent)); err != nil {
			return DeviceProfile{}, &CapabilityError{Device: profile.Name, Op: "vk.GetPhysicalDeviceSurfaceSupport()", Err: err}
		}

		profile.QueueFamilies = append(profile.QueueFamilies, QueueFamilyProfile{
			Index:    idx,
			Graphics: queueFamilies[idx].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Compute:  queueFamilies[idx].QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0,
			Present:  supportsPresent.B(),
		})
	}

	return profile, nil
}

// SelectDevice implements interface
func (v *VulkanInstance) SelectDevice(requiredExtensions []string) (vk.PhysicalDevice, DeviceProfile, error) {
	profiles := make([]DeviceProfile, len(v.availableDevices))
	for idx, device := range v.availableDevices {
		profile, err := v.ProfileDevice(device)
		if err != nil {
			return nil, DeviceProfile{}, err
		}
		profiles[idx] = profile
	}

	selected, err := SelectProfile(profiles, requiredExtensions)
	if err != nil {
		return nil, DeviceProfile{}, err
	}
	return v.availableDevices[selected], profiles[selected], nil
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	if v.surface != nil {
		vk.DestroySurface(v.instance, v.surface, nil)
	}
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
}

// NewVulkanDevice creates a logical device on the selected physical
// device according to the queue plan and retrieves the graphics and
// present queue handles. When the plan resolved both roles to one
// family, the present handle aliases the graphics handle.
func NewVulkanDevice(physicalDevice vk.PhysicalDevice, plan QueuePlan, cfg DeviceConfiguration) (Device, error) {
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(plan.Families))
	for _, family := range plan.Families {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
	}

	var logicalDevice vk.Device
	if err := vk.Error(vk.CreateDevice(physicalDevice, &dci, nil, &logicalDevice)); err != nil {
		return nil, &LogicalDeviceError{Op: "vk.CreateDevice()", Err: err}
	}

	// Handles are retrieved per family in plan order, the graphics
	// family is always first, so the role mapping stays deterministic.
	var graphicsQueue vk.Queue
	vk.GetDeviceQueue(logicalDevice, plan.GraphicsFamily, 0, &graphicsQueue)

	presentQueue := graphicsQueue
	if !plan.Shared() {
		vk.GetDeviceQueue(logicalDevice, plan.PresentFamily, 0, &presentQueue)
	}

	return &VulkanDevice{
		logicalDevice: logicalDevice,
		plan:          plan,
		graphicsQueue: graphicsQueue,
		presentQueue:  presentQueue,
	}, nil
}

// VulkanDevice is a logical device with its resolved queues
type VulkanDevice struct {
	logicalDevice vk.Device
	plan          QueuePlan

	graphicsQueue vk.Queue
	presentQueue  vk.Queue
}

// GraphicsQueue implements interface
func (d *VulkanDevice) GraphicsQueue() vk.Queue {
	return d.graphicsQueue
}

// PresentQueue implements interface
func (d *VulkanDevice) PresentQueue() vk.Queue {
	return d.presentQueue
}

// QueuesAliased implements interface. Submissions to aliased queues
// need external synchronisation, that is up to the caller.
func (d *VulkanDevice) QueuesAliased() bool {
	return d.plan.Shared()
}

// Plan implements interface
func (d *VulkanDevice) Plan() QueuePlan {
	return d.plan
}

// Destroy implements interface
func (d *VulkanDevice) Destroy() {
	vk.DeviceWaitIdle(d.logicalDevice)
	vk.DestroyDevice(d.logicalDevice, nil)
}
