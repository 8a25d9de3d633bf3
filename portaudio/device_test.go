package portaudio

import (
	"testing"
)

// TestGetDeviceCount tests device enumeration
func TestGetDeviceCount(t *testing.T) {
	withFakeEngine(t)

	count, err := GetDeviceCount()
	if err != nil {
		t.Fatalf("GetDeviceCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("GetDeviceCount = %d, want 3", count)
	}
}

// TestGetDeviceInfo tests device information retrieval
func TestGetDeviceInfo(t *testing.T) {
	withFakeEngine(t)

	info, err := GetDeviceInfo(0)
	if err != nil {
		t.Fatalf("GetDeviceInfo(0) failed: %v", err)
	}
	if info.Name == "" {
		t.Error("Device name is empty")
	}
	if info.MaxInputChannels != 2 || info.MaxOutputChannels != 2 {
		t.Errorf("Device 0 channels = (%d, %d), want (2, 2)", info.MaxInputChannels, info.MaxOutputChannels)
	}

	// Invalid device index
	if _, err := GetDeviceInfo(-1); err == nil {
		t.Error("GetDeviceInfo(-1) should fail")
	}
	if _, err := GetDeviceInfo(99); err == nil {
		t.Error("GetDeviceInfo(99) should fail")
	}
}

// TestDevices tests the Devices convenience function
func TestDevices(t *testing.T) {
	withFakeEngine(t)

	devices, err := Devices()
	if err != nil {
		t.Fatalf("Devices failed: %v", err)
	}
	if len(devices) != 3 {
		t.Fatalf("Devices returned %d devices, want 3", len(devices))
	}
	for i, device := range devices {
		if device.Name == "" {
			t.Errorf("Device %d has empty name", i)
		}
		if device.Index != i {
			t.Errorf("Device %d has index %d", i, device.Index)
		}
	}
}

// TestDefaultDevices tests default input/output device retrieval
func TestDefaultDevices(t *testing.T) {
	fe := withFakeEngine(t)

	in, err := DefaultInputDevice()
	if err != nil {
		t.Fatalf("DefaultInputDevice failed: %v", err)
	}
	if in.MaxInputChannels <= 0 {
		t.Error("Default input device has no input channels")
	}

	out, err := DefaultOutputDevice()
	if err != nil {
		t.Fatalf("DefaultOutputDevice failed: %v", err)
	}
	if out.MaxOutputChannels <= 0 {
		t.Error("Default output device has no output channels")
	}

	// No default device available
	fe.defIn = NoDevice
	if _, err := DefaultInputDevice(); err == nil {
		t.Error("DefaultInputDevice should fail when the engine has none")
	}
}

// TestGetHostApiInfo tests host API enumeration
func TestGetHostApiInfo(t *testing.T) {
	withFakeEngine(t)

	count, err := GetHostApiCount()
	if err != nil {
		t.Fatalf("GetHostApiCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("GetHostApiCount = %d, want 1", count)
	}

	info, err := GetHostApiInfo(0)
	if err != nil {
		t.Fatalf("GetHostApiInfo(0) failed: %v", err)
	}
	if info.Name == "" {
		t.Error("Host API name is empty")
	}
	if info.Type != ALSA {
		t.Errorf("Host API type = %d, want ALSA", info.Type)
	}

	if _, err := GetHostApiInfo(5); err == nil {
		t.Error("GetHostApiInfo(5) should fail")
	}

	apis, err := HostApis()
	if err != nil {
		t.Fatalf("HostApis failed: %v", err)
	}
	if len(apis) != 1 {
		t.Errorf("HostApis returned %d, want 1", len(apis))
	}

	idx, err := GetDefaultHostApi()
	if err != nil {
		t.Fatalf("GetDefaultHostApi failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("GetDefaultHostApi = %d, want 0", idx)
	}
}
