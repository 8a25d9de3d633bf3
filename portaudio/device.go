package portaudio

import "errors"

// DeviceInfo describes one audio device known to the engine.
type DeviceInfo struct {
	// Index is the device index used when opening streams
	Index                    int
	Name                     string
	HostApiIndex             int
	MaxInputChannels         int
	MaxOutputChannels        int
	DefaultLowInputLatency   PaTime
	DefaultLowOutputLatency  PaTime
	DefaultHighInputLatency  PaTime
	DefaultHighOutputLatency PaTime
	DefaultSampleRate        float64
}

// HostApiInfo describes one host API (an OS audio subsystem) known to the
// engine.
type HostApiInfo struct {
	Type                HostApiTypeID
	Name                string
	DeviceCount         int
	DefaultInputDevice  int
	DefaultOutputDevice int
}

func GetDeviceCount() (int, error) {
	dc := host.DeviceCount()
	if dc < 0 {
		return 0, newError(ErrorCode(dc))
	}
	return dc, nil
}

func GetDeviceInfo(deviceIdx int) (*DeviceInfo, error) {
	di, ok := host.DeviceInfo(deviceIdx)
	if !ok {
		return nil, errors.New("invalid device index")
	}
	return di, nil
}

// Devices returns a slice of all available audio devices.
// This is a convenience function that wraps GetDeviceCount and GetDeviceInfo.
func Devices() ([]*DeviceInfo, error) {
	count, err := GetDeviceCount()
	if err != nil {
		return nil, err
	}

	devices := make([]*DeviceInfo, count)
	for i := 0; i < count; i++ {
		devices[i], err = GetDeviceInfo(i)
		if err != nil {
			return nil, err
		}
	}
	return devices, nil
}

// DefaultInputDevice returns the default input device.
// Returns an error if no default input device is available.
func DefaultInputDevice() (*DeviceInfo, error) {
	index := host.DefaultInputDevice()
	if index < 0 {
		return nil, errors.New("no default input device available")
	}
	return GetDeviceInfo(index)
}

// DefaultOutputDevice returns the default output device.
// Returns an error if no default output device is available.
func DefaultOutputDevice() (*DeviceInfo, error) {
	index := host.DefaultOutputDevice()
	if index < 0 {
		return nil, errors.New("no default output device available")
	}
	return GetDeviceInfo(index)
}

func GetHostApiCount() (int, error) {
	hc := host.HostApiCount()
	if hc < 0 {
		return 0, newError(ErrorCode(hc))
	}
	return hc, nil
}

func GetHostApiInfo(hostApiIdx int) (*HostApiInfo, error) {
	hi, ok := host.HostApiInfo(hostApiIdx)
	if !ok {
		return nil, errors.New("invalid host API index")
	}
	return hi, nil
}

// GetDefaultHostApi returns the index of the engine's default host API.
func GetDefaultHostApi() (int, error) {
	idx := host.DefaultHostApi()
	if idx < 0 {
		return 0, newError(ErrorCode(idx))
	}
	return idx, nil
}

// HostApis returns a slice of all available host APIs.
// This is a convenience function that wraps GetHostApiCount and GetHostApiInfo.
func HostApis() ([]*HostApiInfo, error) {
	count, err := GetHostApiCount()
	if err != nil {
		return nil, err
	}

	apis := make([]*HostApiInfo, count)
	for i := 0; i < count; i++ {
		apis[i], err = GetHostApiInfo(i)
		if err != nil {
			return nil, err
		}
	}
	return apis, nil
}
