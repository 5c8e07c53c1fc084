package fontview

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice wraps a noop HAL device in a wgpu.Device for testing.
func createNoopDevice(t *testing.T) (*wgpu.Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	device, err := wgpu.NewDeviceFromHAL(openDev.Device, openDev.Queue, 0, gputypes.DefaultLimits(), "fontview_test")
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		t.Fatalf("NewDeviceFromHAL failed: %v", err)
	}
	cleanup := func() {
		device.Release()
		instance.Destroy()
	}
	return device, cleanup
}
