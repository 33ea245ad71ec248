package main

import (
	"runtime"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkboot/core"
)

func init() {
	runtime.LockOSThread()
}

// loadConfiguration builds the bootstrap configuration from defaults
// overridden by the environment. A .env file next to the binary works too.
func loadConfiguration() core.Configuration {
	godotenv.Load()

	return core.Configuration{
		Time: core.TimeConfiguration{
			FramesPerSecond: envInt("VKBOOT_FPS", 60),
			EventPollDelay:  envInt("VKBOOT_EVENT_POLL_DELAY", 5),
		},
		Window: core.WindowConfiguration{
			Title:  envy.Get("VKBOOT_TITLE", "Vulkan"),
			Width:  uint32(envInt("VKBOOT_WIDTH", 600)),
			Height: uint32(envInt("VKBOOT_HEIGHT", 800)),
		},
		Device: core.DeviceConfiguration{
			Extensions: []string{"VK_KHR_swapchain"},
		},
	}
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(envy.Get(key, strconv.Itoa(fallback)))
	if err != nil {
		log.WithField("key", key).Warn("Ignoring non numeric override")
		return fallback
	}
	return value
}

func envBool(key string) bool {
	value, err := strconv.ParseBool(envy.Get(key, "false"))
	if err != nil {
		return false
	}
	return value
}

func newWindow(cfg core.WindowConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.Fatal("sdl.CreateWindow(): ", err)
	}
	setWindowIcon(window)
	return window
}

func main() {
	configuration := loadConfiguration()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Fatal("sdl.Init(): ", err)
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Fatal("sdl.VulkanLoadLibrary(): ", err)
	}
	defer sdl.VulkanUnloadLibrary()

	window := newWindow(configuration.Window)
	defer window.Destroy()

	instanceCfg := core.InstanceConfiguration{
		DebugMode:  envBool("VKBOOT_DEBUG"),
		Extensions: window.VulkanGetInstanceExtensions(),
		Layers:     []string{},
	}

	vkInstance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, sdl.VulkanGetVkGetInstanceProcAddr(), instanceCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer vkInstance.Destroy()

	for idx, info := range vkInstance.PhysicalDevicesInfo() {
		log.WithFields(log.Fields{
			"index":       idx,
			"name":        info.Name,
			"type":        info.DeviceType,
			"api_version": info.APIVersion,
		}).Info("Physical device")
	}

	surface, err := window.VulkanCreateSurface(vkInstance.Instance())
	if err != nil {
		log.Fatal(&core.SurfaceError{Err: err})
	}
	vkInstance.SetSurface(surface)

	physicalDevice, profile, err := vkInstance.SelectDevice(configuration.Device.Extensions)
	if err != nil {
		log.Fatal(err)
	}
	log.WithField("name", profile.Name).Info("Selected physical device")

	plan, err := profile.ResolveQueues()
	if err != nil {
		log.Fatal(&core.LogicalDeviceError{Op: "core.ResolveQueues()", Err: err})
	}

	vkDevice, err := core.NewVulkanDevice(physicalDevice, plan, configuration.Device)
	if err != nil {
		log.Fatal(err)
	}
	defer vkDevice.Destroy()

	log.WithFields(log.Fields{
		"graphics_family": plan.GraphicsFamily,
		"present_family":  plan.PresentFamily,
		"aliased":         vkDevice.QueuesAliased(),
	}).Info("Logical device ready")

	if envBool("VKBOOT_HOLD") {
		holdWindow(configuration.Time)
	}
}

// holdWindow keeps the window around until ESC or a quit event,
// polling at the configured frame rate
func holdWindow(cfg core.TimeConfiguration) {
	time := core.NewTime(cfg)
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("Event loop exited")
			break EventLoop
		case <-time.FpsTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				}
			}
		}
	}
}
