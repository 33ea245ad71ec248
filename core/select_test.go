package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkboot/core"
)

var requiredExtensions = []string{"VK_KHR_swapchain"}

func completeProfile(name string) core.DeviceProfile {
	return core.DeviceProfile{
		Name:         name,
		Extensions:   []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"},
		Formats:      []vk.SurfaceFormat{{}},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
		QueueFamilies: []core.QueueFamilyProfile{
			{Index: 0, Graphics: true, Compute: true, Present: true},
		},
	}
}

func TestSelectProfileSkipsDeviceWithoutExtensions(t *testing.T) {
	c := qt.New(t)

	noSwapchain := completeProfile("NoSwapchainGPU")
	noSwapchain.Extensions = []string{"VK_KHR_maintenance1"}

	selected, err := core.SelectProfile([]core.DeviceProfile{
		noSwapchain,
		completeProfile("SwapchainGPU"),
	}, requiredExtensions)
	c.Assert(err, qt.IsNil)
	c.Assert(selected, qt.Equals, 1)
}

func TestSelectProfileFirstMatchWins(t *testing.T) {
	c := qt.New(t)

	selected, err := core.SelectProfile([]core.DeviceProfile{
		completeProfile("FirstGPU"),
		completeProfile("SecondGPU"),
	}, requiredExtensions)
	c.Assert(err, qt.IsNil)
	c.Assert(selected, qt.Equals, 0)
}

func TestSelectProfileNoDevices(t *testing.T) {
	c := qt.New(t)

	selected, err := core.SelectProfile(nil, requiredExtensions)
	c.Assert(selected, qt.Equals, -1)

	noSuitable, ok := err.(*core.NoSuitableDeviceError)
	c.Assert(ok, qt.Equals, true)
	c.Assert(len(noSuitable.Rejected), qt.Equals, 0)
	c.Assert(noSuitable.Error(), qt.Equals, "no suitable device: no physical devices enumerated")
}

func TestSelectProfileNoPresentModes(t *testing.T) {
	c := qt.New(t)

	noModes := completeProfile("NoModesGPU")
	noModes.PresentModes = nil

	selected, err := core.SelectProfile([]core.DeviceProfile{noModes}, requiredExtensions)
	c.Assert(selected, qt.Equals, -1)

	noSuitable, ok := err.(*core.NoSuitableDeviceError)
	c.Assert(ok, qt.Equals, true)
	c.Assert(len(noSuitable.Rejected), qt.Equals, 1)
	c.Assert(noSuitable.Rejected[0].Name, qt.Equals, "NoModesGPU")
	c.Assert(noSuitable.Rejected[0].Reason, qt.Equals, "no supported present modes")
}

func TestSelectProfileNoSurfaceFormats(t *testing.T) {
	c := qt.New(t)

	noFormats := completeProfile("NoFormatsGPU")
	noFormats.Formats = nil

	_, err := core.SelectProfile([]core.DeviceProfile{noFormats}, requiredExtensions)
	noSuitable, ok := err.(*core.NoSuitableDeviceError)
	c.Assert(ok, qt.Equals, true)
	c.Assert(noSuitable.Rejected[0].Reason, qt.Equals, "no supported surface formats")
}

func TestSuitableReportsFirstFailedPredicate(t *testing.T) {
	c := qt.New(t)

	suitable, reason := (&core.DeviceProfile{Name: "EmptyGPU"}).Suitable(requiredExtensions)
	c.Assert(suitable, qt.Equals, false)
	c.Assert(reason, qt.Equals, "missing required device extensions")

	computeOnly := completeProfile("ComputeGPU")
	computeOnly.QueueFamilies = []core.QueueFamilyProfile{
		{Index: 0, Compute: true, Present: true},
	}
	suitable, reason = computeOnly.Suitable(requiredExtensions)
	c.Assert(suitable, qt.Equals, false)
	c.Assert(reason, qt.Equals, "no graphics capable queue family")
}

func TestSupportsExtensions(t *testing.T) {
	c := qt.New(t)

	profile := completeProfile("GPU")
	c.Assert(profile.SupportsExtensions(nil), qt.Equals, true)
	c.Assert(profile.SupportsExtensions([]string{"VK_KHR_swapchain"}), qt.Equals, true)
	c.Assert(profile.SupportsExtensions([]string{"VK_KHR_swapchain", "VK_NV_glsl_shader"}), qt.Equals, false)
}

func TestResolveQueuesSharedFamily(t *testing.T) {
	c := qt.New(t)

	profile := completeProfile("SharedGPU")
	plan, err := profile.ResolveQueues()
	c.Assert(err, qt.IsNil)
	c.Assert(plan.GraphicsFamily, qt.Equals, uint32(0))
	c.Assert(plan.PresentFamily, qt.Equals, uint32(0))
	c.Assert(plan.Shared(), qt.Equals, true)
	c.Assert(plan.Families, qt.DeepEquals, []uint32{0})
}

func TestResolveQueuesDistinctFamilies(t *testing.T) {
	c := qt.New(t)

	// Present-only family enumerates before the graphics family, the
	// plan still has to put the graphics family first.
	profile := completeProfile("SplitGPU")
	profile.QueueFamilies = []core.QueueFamilyProfile{
		{Index: 0, Present: true},
		{Index: 1, Graphics: true},
	}

	plan, err := profile.ResolveQueues()
	c.Assert(err, qt.IsNil)
	c.Assert(plan.GraphicsFamily, qt.Equals, uint32(1))
	c.Assert(plan.PresentFamily, qt.Equals, uint32(0))
	c.Assert(plan.Shared(), qt.Equals, false)
	c.Assert(plan.Families, qt.DeepEquals, []uint32{1, 0})
}

func TestResolveQueuesFirstCapableFamilyWins(t *testing.T) {
	c := qt.New(t)

	profile := completeProfile("ManyFamiliesGPU")
	profile.QueueFamilies = []core.QueueFamilyProfile{
		{Index: 0, Compute: true},
		{Index: 1, Graphics: true, Present: true},
		{Index: 2, Graphics: true},
	}

	plan, err := profile.ResolveQueues()
	c.Assert(err, qt.IsNil)
	c.Assert(plan.GraphicsFamily, qt.Equals, uint32(1))
	c.Assert(plan.PresentFamily, qt.Equals, uint32(1))
	c.Assert(plan.Families, qt.DeepEquals, []uint32{1})
}

func TestResolveQueuesNoGraphicsFamily(t *testing.T) {
	c := qt.New(t)

	profile := completeProfile("PresentOnlyGPU")
	profile.QueueFamilies = []core.QueueFamilyProfile{
		{Index: 0, Present: true},
	}

	_, err := profile.ResolveQueues()
	c.Assert(err, qt.ErrorMatches, "no queue family supports graphics")
}

func TestResolveQueuesNoPresentFamily(t *testing.T) {
	c := qt.New(t)

	profile := completeProfile("OffscreenGPU")
	profile.QueueFamilies = []core.QueueFamilyProfile{
		{Index: 0, Graphics: true, Compute: true},
	}

	_, err := profile.ResolveQueues()
	c.Assert(err, qt.ErrorMatches, "no queue family supports presentation")
}
