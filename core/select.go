package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// QueueFamilyProfile describes one queue family of a physical device.
// Present is resolved against the surface the profile was built for.
type QueueFamilyProfile struct {
	Index    uint32
	Graphics bool
	Compute  bool
	Present  bool
}

// DeviceProfile holds everything selection needs to know about
// a physical device, queried once up front so that suitability
// checks and queue resolution never touch the API again.
type DeviceProfile struct {
	Name       string
	Extensions []string

	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode

	QueueFamilies []QueueFamilyProfile
}

// SupportsExtensions checks that every required extension
// is present in the profile's supported set
func (p *DeviceProfile) SupportsExtensions(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range p.Extensions {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// predicate is one suitability requirement. Predicates are kept in
// an explicit list and evaluated in order, the first one that fails
// names the rejection reason.
type predicate struct {
	name  string
	check func(*DeviceProfile) bool
}

func suitabilityChecks(requiredExtensions []string) []predicate {
	return []predicate{
		{"missing required device extensions", func(p *DeviceProfile) bool {
			return p.SupportsExtensions(requiredExtensions)
		}},
		{"no supported surface formats", func(p *DeviceProfile) bool {
			return len(p.Formats) > 0
		}},
		{"no supported present modes", func(p *DeviceProfile) bool {
			return len(p.PresentModes) > 0
		}},
		{"no graphics capable queue family", func(p *DeviceProfile) bool {
			for _, family := range p.QueueFamilies {
				if family.Graphics {
					return true
				}
			}
			return false
		}},
		{"no present capable queue family", func(p *DeviceProfile) bool {
			for _, family := range p.QueueFamilies {
				if family.Present {
					return true
				}
			}
			return false
		}},
	}
}

// Suitable checks the profile against every selection predicate.
// If not suitable string contains the reason
func (p *DeviceProfile) Suitable(requiredExtensions []string) (bool, string) {
	for _, pred := range suitabilityChecks(requiredExtensions) {
		if !pred.check(p) {
			return false, pred.name
		}
	}
	return true, ""
}

// SelectProfile returns the index of the first profile that satisfies
// every predicate. Profiles are visited in enumeration order and there
// is no ranking between qualifying devices.
func SelectProfile(profiles []DeviceProfile, requiredExtensions []string) (int, error) {
	rejected := make([]RejectedDevice, 0, len(profiles))
	for idx := range profiles {
		suitable, reason := profiles[idx].Suitable(requiredExtensions)
		if suitable {
			return idx, nil
		}
		rejected = append(rejected, RejectedDevice{
			Name:   profiles[idx].Name,
			Reason: reason,
		})
	}
	return -1, &NoSuitableDeviceError{Rejected: rejected}
}

// QueuePlan is the resolved queue family request for logical device
// creation. Families is an ordered unique list, graphics family first,
// so that retrieved queue handles map back to their roles no matter
// how many families ended up requested.
type QueuePlan struct {
	GraphicsFamily uint32
	PresentFamily  uint32

	Families []uint32
}

// Shared reports whether one family serves both roles
func (qp *QueuePlan) Shared() bool {
	return qp.GraphicsFamily == qp.PresentFamily
}

// ResolveQueues finds the first graphics capable family and the first
// present capable family, each scan short-circuiting independently,
// and deduplicates them preserving request order.
func (p *DeviceProfile) ResolveQueues() (QueuePlan, error) {
	var (
		plan          QueuePlan
		graphicsFound bool
		presentFound  bool
	)
	for _, family := range p.QueueFamilies {
		if !graphicsFound && family.Graphics {
			plan.GraphicsFamily = family.Index
			graphicsFound = true
		}
		if !presentFound && family.Present {
			plan.PresentFamily = family.Index
			presentFound = true
		}
		if graphicsFound && presentFound {
			break
		}
	}
	if !graphicsFound {
		return QueuePlan{}, errors.New("no queue family supports graphics")
	}
	if !presentFound {
		return QueuePlan{}, errors.New("no queue family supports presentation")
	}

	plan.Families = []uint32{plan.GraphicsFamily}
	if plan.PresentFamily != plan.GraphicsFamily {
		plan.Families = append(plan.Families, plan.PresentFamily)
	}
	return plan, nil
}
