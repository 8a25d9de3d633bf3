//go:build !portaudio

package portaudio

// Stub engine used when the native PortAudio library is not compiled in.
// Build with -tags portaudio (and a portaudio-2.0 pkg-config install) for the
// real backend. Every operation fails with NotInitialized.

func newHostEngine() hostEngine {
	return &stubEngine{}
}

type stubEngine struct{}

func (e *stubEngine) Initialize() ErrorCode { return NotInitialized }
func (e *stubEngine) Terminate() ErrorCode  { return NoError }
func (e *stubEngine) Version() int          { return 0 }

func (e *stubEngine) VersionText() string {
	return "PortAudio not available (build with -tags portaudio)"
}

func (e *stubEngine) ErrorText(code ErrorCode) string { return errorText(code) }

func (e *stubEngine) LastHostError() (HostApiTypeID, int, string, bool) {
	return 0, 0, "", false
}

func (e *stubEngine) DeviceCount() int                       { return int(NotInitialized) }
func (e *stubEngine) DeviceInfo(int) (*DeviceInfo, bool)     { return nil, false }
func (e *stubEngine) DefaultInputDevice() int                { return NoDevice }
func (e *stubEngine) DefaultOutputDevice() int               { return NoDevice }
func (e *stubEngine) HostApiCount() int                      { return int(NotInitialized) }
func (e *stubEngine) HostApiInfo(int) (*HostApiInfo, bool)   { return nil, false }
func (e *stubEngine) DefaultHostApi() int                    { return int(NotInitialized) }

func (e *stubEngine) IsFormatSupported(_, _ *PaStreamParameters, _ float64) ErrorCode {
	return NotInitialized
}

func (e *stubEngine) OpenStream(openRequest) (any, ErrorCode) { return nil, NotInitialized }
func (e *stubEngine) CloseStream(any) ErrorCode               { return NotInitialized }
func (e *stubEngine) StartStream(any) ErrorCode               { return NotInitialized }
func (e *stubEngine) StopStream(any) ErrorCode                { return NotInitialized }
func (e *stubEngine) AbortStream(any) ErrorCode               { return NotInitialized }
func (e *stubEngine) StreamStopped(any) (bool, ErrorCode)     { return false, NotInitialized }
func (e *stubEngine) StreamActive(any) (bool, ErrorCode)      { return false, NotInitialized }
func (e *stubEngine) StreamInfo(any) (*StreamInfo, bool)      { return nil, false }
func (e *stubEngine) StreamTime(any) PaTime                   { return 0 }
func (e *stubEngine) StreamCPULoad(any) float64               { return 0 }
func (e *stubEngine) ReadStream(any, []byte, int) ErrorCode   { return NotInitialized }
func (e *stubEngine) WriteStream(any, []byte, int) ErrorCode  { return NotInitialized }
func (e *stubEngine) StreamReadAvailable(any) int64           { return int64(NotInitialized) }
func (e *stubEngine) StreamWriteAvailable(any) int64          { return int64(NotInitialized) }
