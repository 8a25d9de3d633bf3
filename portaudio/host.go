package portaudio

// hostEngine is the surface of the native audio engine this package drives.
// The cgo backend (host_cgo.go, build tag "portaudio") forwards every method
// to the PortAudio C library; host_stub.go supplies a compile-anywhere
// placeholder. Tests substitute a scripted fake.
//
// Methods return raw ErrorCodes rather than Go errors: translating codes into
// the error taxonomy (and deciding which codes are benign) is the binding
// layer's job, not the engine's.
type hostEngine interface {
	Initialize() ErrorCode
	Terminate() ErrorCode
	Version() int
	VersionText() string
	ErrorText(code ErrorCode) string
	// LastHostError reports details of the most recent UnanticipatedHostError.
	LastHostError() (apiType HostApiTypeID, code int, text string, ok bool)

	DeviceCount() int // count, or a negative ErrorCode
	DeviceInfo(index int) (*DeviceInfo, bool)
	DefaultInputDevice() int // device index, or negative if none
	DefaultOutputDevice() int
	HostApiCount() int // count, or a negative ErrorCode
	HostApiInfo(index int) (*HostApiInfo, bool)
	DefaultHostApi() int
	IsFormatSupported(input, output *PaStreamParameters, sampleRate float64) ErrorCode

	// OpenStream opens a native stream and returns an opaque handle. The
	// handle is owned by exactly one Stream and must be released with
	// CloseStream exactly once.
	OpenStream(req openRequest) (handle any, code ErrorCode)
	CloseStream(handle any) ErrorCode
	StartStream(handle any) ErrorCode
	StopStream(handle any) ErrorCode
	AbortStream(handle any) ErrorCode
	StreamStopped(handle any) (bool, ErrorCode)
	StreamActive(handle any) (bool, ErrorCode)
	StreamInfo(handle any) (*StreamInfo, bool)
	StreamTime(handle any) PaTime
	StreamCPULoad(handle any) float64
	ReadStream(handle any, buf []byte, frames int) ErrorCode
	WriteStream(handle any, buf []byte, frames int) ErrorCode
	StreamReadAvailable(handle any) int64
	StreamWriteAvailable(handle any) int64
}

// engineCallback is the engine-facing callback shape: raw interleaved spans
// owned by the engine, sized frameCount x frame stride per direction. It runs
// on the engine's real-time thread; invocations are strictly sequential per
// stream. The callback adapter (callback.go) implements it on top of the
// user-facing StreamCallback.
type engineCallback func(input, output []byte, frameCount int, timeInfo *StreamCallbackTimeInfo, statusFlags StreamCallbackFlags) StreamCallbackResult

// openRequest carries everything the engine needs to open a stream. Input and
// Output are nil for directions the stream does not have. Callback is nil for
// blocking-mode streams.
type openRequest struct {
	Input           *PaStreamParameters
	Output          *PaStreamParameters
	SampleRate      float64
	FramesPerBuffer int
	Flags           PaStreamFlags
	Callback        engineCallback
}

// host is the engine every package-level function and stream goes through.
// Swapped for a fake in tests.
var host hostEngine = newHostEngine()
