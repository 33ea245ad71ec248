package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/devblok/vkboot/core"
)

// Dumps the physical device inventory as JSON. Runs headless,
// so no surface dependent capabilities show up here.
func main() {
	cfg := core.InstanceConfiguration{
		DebugMode:  false,
		Extensions: []string{},
		Layers:     []string{},
	}

	vkInstance, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo, nil, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bytes, err := json.Marshal(vkInstance.PhysicalDevicesInfo())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%s", bytes)

	vkInstance.Destroy()
}
