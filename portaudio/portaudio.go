// Package portaudio binds a native audio engine's stream lifecycle and
// device/host enumeration to Go.
//
// The package wraps PortAudio: Initialize/Terminate bracket all use of the
// engine, OpenStream opens an input, output, or duplex stream, and a stream
// runs in one of two modes.
//
// Blocking mode (no callback in the StreamConfig):
//
//	portaudio.Initialize()
//	defer portaudio.Terminate()
//
//	cfg := portaudio.NewStreamConfig(44100, 2, portaudio.SampleFmtInt16)
//	cfg.Output = true
//	cfg.FramesPerBuffer = 1024
//	stream, _ := portaudio.OpenStream(cfg)
//	defer stream.Close()
//	stream.StartStream()
//	stream.Write(buf, 512, false)
//
// Callback mode (StreamConfig.Callback set): the engine invokes the callback
// on its own real-time thread once per buffer period, handing it the input
// samples and expecting the output samples back in the CallbackResult:
//
//	cfg.Callback = func(input []byte, frameCount int,
//	    timeInfo *portaudio.StreamCallbackTimeInfo,
//	    flags portaudio.StreamCallbackFlags) portaudio.CallbackResult {
//	    // fill and return your own buffer
//	    return portaudio.CallbackResult{Data: buf, Code: portaudio.Continue}
//	}
//
// # Thread safety
//
// Initialize and Terminate are safe to call from multiple goroutines. A
// Stream must be driven by a single owning goroutine: Open, Start, Stop,
// Read, Write and Close are not safe to call concurrently on one stream. The
// engine's callback thread is independent of the owning goroutine; the only
// state shared with it is managed inside this package.
//
// # Callback constraints
//
// Callbacks run in a real-time context managed by the engine, not a normal
// goroutine schedule. Keep them fast and allocation-free: reuse buffers,
// avoid blocking operations, and hand data to other goroutines through
// non-blocking structures such as a ring buffer. A callback that panics or
// returns an invalid continuation code aborts the stream; the failure is
// observable afterwards through Stream.Err.
//
// The native engine is selected at build time: compile with -tags portaudio
// to link the PortAudio C library, without it every operation fails with
// NotInitialized.
package portaudio

import "sync"

var (
	// initialized tracks the initialization reference count
	initialized int
	// initMu protects the initialized counter
	initMu sync.Mutex
)

// Initialize initializes the native audio engine.
//
// It must be called before any device, host-API, or stream operation. Calls
// are reference counted: each Initialize must be matched with a Terminate,
// and the engine is only torn down when the count reaches zero.
// Re-initializing after the final Terminate is legal and rescans the device
// and host-API tables.
func Initialize() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized == 0 {
		if code := host.Initialize(); code != NoError {
			return newError(code)
		}
	}
	initialized++
	return nil
}

// Terminate releases the native audio engine once the last matching
// Initialize has been undone. All streams must be closed before the final
// Terminate.
func Terminate() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized == 0 {
		return nil
	}

	initialized--
	if initialized == 0 {
		if code := host.Terminate(); code != NoError {
			initialized++ // restore count on error
			return newError(code)
		}
	}
	return nil
}

// GetVersion returns the native engine's version number.
func GetVersion() int {
	return host.Version()
}

// GetVersionText returns the native engine's version string.
func GetVersionText() string {
	return host.VersionText()
}

// GetErrorText returns the engine's message for an error code.
func GetErrorText(code ErrorCode) string {
	return host.ErrorText(code)
}

// IsFormatSupported reports whether a stream could be opened with the given
// parameters. Pass nil for a direction the stream would not have.
func IsFormatSupported(inputParameters, outputParameters *PaStreamParameters, sampleRate float64) error {
	if code := host.IsFormatSupported(inputParameters, outputParameters, sampleRate); code != FormatIsSupported {
		return newError(code)
	}
	return nil
}
