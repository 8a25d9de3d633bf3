package portaudio

import (
	"fmt"
	"sync"
)

// PaStreamParameters describe one direction of a stream: which device, how
// many interleaved channels, the sample format, and the latency suggested to
// the engine.
type PaStreamParameters struct {
	DeviceIndex      int
	ChannelCount     int
	SampleFormat     PaSampleFormat
	SuggestedLatency PaTime
	// HostApiSpecificStreamInfo is an opaque host-API extension blob passed
	// through to the engine untouched. Leave nil for portable use.
	HostApiSpecificStreamInfo any
}

// StreamInfo is the latency and sample-rate information captured when a
// stream is opened. It is a snapshot: it is never updated afterwards, and it
// remains readable after the stream is closed.
type StreamInfo struct {
	StructVersion int
	InputLatency  PaTime
	OutputLatency PaTime
	SampleRate    float64
}

// StreamMode distinguishes the two ways a stream moves data.
type StreamMode int

const (
	// Blocking streams are driven by the owner through Read and Write.
	Blocking StreamMode = iota
	// CallbackDriven streams are driven by the engine through the registered
	// StreamCallback; Read and Write are not usable.
	CallbackDriven
)

// StreamConfig collects the parameters for OpenStream. Use NewStreamConfig to
// seed it: the zero value selects device index 0 rather than the engine
// defaults.
type StreamConfig struct {
	SampleRate float64
	Channels   int
	Format     PaSampleFormat

	// At least one of Input and Output must be set.
	Input  bool
	Output bool

	// Device indices; NoDevice selects the engine's default device for the
	// direction.
	InputDeviceIndex  int
	OutputDeviceIndex int

	// FramesPerBuffer is the buffer period size;
	// FramesPerBufferUnspecified lets the engine choose.
	FramesPerBuffer int

	// Opaque host-API extension blobs, passed through per direction.
	InputHostApiStreamInfo  any
	OutputHostApiStreamInfo any

	// Callback selects callback mode when non-nil; otherwise the stream is
	// opened for blocking I/O.
	Callback StreamCallback
}

// NewStreamConfig returns a StreamConfig for the given rate, channel count
// and sample format, with both device indices set to NoDevice (engine
// defaults) and an engine-chosen buffer size.
func NewStreamConfig(sampleRate float64, channels int, format PaSampleFormat) StreamConfig {
	return StreamConfig{
		SampleRate:        sampleRate,
		Channels:          channels,
		Format:            format,
		InputDeviceIndex:  NoDevice,
		OutputDeviceIndex: NoDevice,
		FramesPerBuffer:   FramesPerBufferUnspecified,
	}
}

// Stream is one open audio stream. It exclusively owns the engine's native
// handle, which is released exactly once, on Close. All methods must be
// called from the stream's owning goroutine.
type Stream struct {
	handle           any
	inputParameters  *PaStreamParameters
	outputParameters *PaStreamParameters
	info             *StreamInfo
	mode             StreamMode
	adapter          *callbackAdapter
	isOpen           bool

	// pendingErr is set by the callback adapter on the engine's real-time
	// thread and read by the owner; the only state the two contexts share.
	pendingMu  sync.Mutex
	pendingErr error
}

// resolveDirection builds the parameter descriptor for one direction,
// resolving NoDevice to the engine default and pulling the suggested latency
// from the device's default low-latency figure.
func resolveDirection(deviceIdx int, defaultIdx func() int, channels int, format PaSampleFormat,
	ext any, isInput bool) (*PaStreamParameters, error) {

	idx := deviceIdx
	if idx < 0 {
		idx = defaultIdx()
	}
	direction := "output"
	if isInput {
		direction = "input"
	}
	if idx < 0 || idx >= host.DeviceCount() {
		return nil, &Error{
			Code: InvalidDevice,
			Text: fmt.Sprintf("Invalid %s device (no default %s device)", direction, direction),
		}
	}

	di, ok := host.DeviceInfo(idx)
	if !ok {
		return nil, &Error{Code: InvalidDevice, Text: fmt.Sprintf("Invalid %s device", direction)}
	}

	latency := di.DefaultLowOutputLatency
	if isInput {
		latency = di.DefaultLowInputLatency
	}

	return &PaStreamParameters{
		DeviceIndex:               idx,
		ChannelCount:              channels,
		SampleFormat:              format,
		SuggestedLatency:          latency,
		HostApiSpecificStreamInfo: ext,
	}, nil
}

// OpenStream opens a stream per cfg and returns its handle.
//
// Argument validation happens before any engine call and never alters engine
// state. Engine failures during the open sequence roll back whatever was
// partially built, so an error return never leaks a native handle.
func OpenStream(cfg StreamConfig) (*Stream, error) {
	if !cfg.Input && !cfg.Output {
		return nil, ErrNoStreamDirection
	}
	if cfg.Channels < 1 {
		return nil, ErrInvalidChannelCount
	}
	if cfg.FramesPerBuffer < 0 {
		return nil, fmt.Errorf("invalid frames per buffer %d", cfg.FramesPerBuffer)
	}

	var (
		inParams, outParams *PaStreamParameters
		err                 error
	)
	if cfg.Output {
		outParams, err = resolveDirection(cfg.OutputDeviceIndex, host.DefaultOutputDevice,
			cfg.Channels, cfg.Format, cfg.OutputHostApiStreamInfo, false)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Input {
		inParams, err = resolveDirection(cfg.InputDeviceIndex, host.DefaultInputDevice,
			cfg.Channels, cfg.Format, cfg.InputHostApiStreamInfo, true)
		if err != nil {
			return nil, err
		}
	}

	s := &Stream{
		inputParameters:  inParams,
		outputParameters: outParams,
		mode:             Blocking,
	}

	var engCallback engineCallback
	if cfg.Callback != nil {
		s.mode = CallbackDriven
		s.adapter = &callbackAdapter{stream: s, callback: cfg.Callback}
		engCallback = s.adapter.invoke
	}

	handle, code := host.OpenStream(openRequest{
		Input:           inParams,
		Output:          outParams,
		SampleRate:      cfg.SampleRate,
		FramesPerBuffer: cfg.FramesPerBuffer,
		Flags:           ClipOff,
		Callback:        engCallback,
	})
	if code != NoError {
		return nil, newError(code)
	}

	info, ok := host.StreamInfo(handle)
	if !ok {
		host.CloseStream(handle)
		return nil, &Error{Code: InternalError, Text: "Could not get stream information"}
	}

	s.handle = handle
	s.info = info
	s.isOpen = true
	return s, nil
}

// IsOpen reports whether the stream still owns a native handle.
func (s *Stream) IsOpen() bool {
	return s.isOpen
}

// Mode reports whether the stream is blocking or callback-driven.
func (s *Stream) Mode() StreamMode {
	return s.mode
}

// Close releases the native stream. The engine stops invoking the stream
// callback before the adapter context is released, so no invocation can
// observe freed state. Close is idempotent: closing an already-closed stream
// is a no-op.
func (s *Stream) Close() error {
	if !s.isOpen {
		return nil
	}

	code := host.CloseStream(s.handle)
	s.release()
	if code != NoError {
		return newError(code)
	}
	return nil
}

// release drops the handle and adapter after the engine is done with them.
// The info snapshot intentionally survives for re-inspection.
func (s *Stream) release() {
	s.handle = nil
	s.adapter = nil
	s.isOpen = false
}

// forceClose tears the stream down after an engine failure: no
// partially-valid stream state is retained.
func (s *Stream) forceClose() {
	if !s.isOpen {
		return
	}
	host.CloseStream(s.handle)
	s.release()
}

// StartStream starts audio processing. Starting an already-started stream is
// not an error. Any other engine failure closes the stream before the error
// is reported.
func (s *Stream) StartStream() error {
	if !s.isOpen {
		return errStreamClosed()
	}

	if code := host.StartStream(s.handle); code != NoError && code != StreamIsNotStopped {
		s.forceClose()
		return newError(code)
	}
	return nil
}

// StopStream stops audio processing, letting pending buffers play out.
// Stopping an already-stopped stream is not an error; any other engine
// failure closes the stream.
func (s *Stream) StopStream() error {
	if !s.isOpen {
		return errStreamClosed()
	}

	if code := host.StopStream(s.handle); code != NoError && code != StreamIsStopped {
		s.forceClose()
		return newError(code)
	}
	return nil
}

// AbortStream stops audio processing immediately, discarding pending
// buffers. Aborting an already-stopped stream is not an error; any other
// engine failure closes the stream.
func (s *Stream) AbortStream() error {
	if !s.isOpen {
		return errStreamClosed()
	}

	if code := host.AbortStream(s.handle); code != NoError && code != StreamIsStopped {
		s.forceClose()
		return newError(code)
	}
	return nil
}

// IsStopped reports whether the stream is in the stopped state.
func (s *Stream) IsStopped() (bool, error) {
	if !s.isOpen {
		return false, errStreamClosed()
	}

	stopped, code := host.StreamStopped(s.handle)
	if code != NoError {
		s.forceClose()
		return false, newError(code)
	}
	return stopped, nil
}

// IsActive reports whether the stream is actively processing audio.
func (s *Stream) IsActive() (bool, error) {
	if !s.isOpen {
		return false, errStreamClosed()
	}

	active, code := host.StreamActive(s.handle)
	if code != NoError {
		s.forceClose()
		return false, newError(code)
	}
	return active, nil
}

// Time returns the stream's current time in seconds, in the same clock as
// the callback timing info.
func (s *Stream) Time() (float64, error) {
	if !s.isOpen {
		return 0, errStreamClosed()
	}

	t := host.StreamTime(s.handle)
	if t == 0 {
		s.forceClose()
		return 0, &Error{Code: InternalError, Text: "Internal Error"}
	}
	return float64(t), nil
}

// CPULoad returns the fraction of real time the stream spends processing
// audio, 0.0 to 1.0.
func (s *Stream) CPULoad() (float64, error) {
	if !s.isOpen {
		return 0, errStreamClosed()
	}
	return host.StreamCPULoad(s.handle), nil
}

// Write writes frames frames of interleaved samples to a blocking-mode
// output stream, blocking until the engine has consumed them. buf must hold
// exactly frames x channels x sample-width bytes.
//
// An output underflow is swallowed unless raiseOnUnderflow is set. A raised
// underflow, or any other engine failure, closes the stream before the error
// is returned.
func (s *Stream) Write(buf []byte, frames int, raiseOnUnderflow bool) error {
	if frames < 0 {
		return ErrInvalidFrameCount
	}
	if !s.isOpen {
		return errStreamClosed()
	}
	if s.outputParameters == nil {
		return newError(CanNotWriteToAnInputOnlyStream)
	}

	expected, err := BufferSize(frames, s.outputParameters.ChannelCount, s.outputParameters.SampleFormat)
	if err != nil {
		return err
	}
	if len(buf) != expected {
		return fmt.Errorf("buffer size mismatch: expected %d bytes for %d frames, got %d bytes",
			expected, frames, len(buf))
	}

	code := host.WriteStream(s.handle, buf, frames)
	switch {
	case code == NoError:
		return nil
	case code == OutputUnderflowed && !raiseOnUnderflow:
		return nil
	default:
		s.forceClose()
		return newError(code)
	}
}

// Read reads frames frames of interleaved samples from a blocking-mode input
// stream, blocking until the engine has produced them. The receive buffer is
// sized from the stream's input parameters.
//
// An input overflow is swallowed unless raiseOnOverflow is set. A raised
// overflow, or any other engine failure, closes the stream before the error
// is returned.
func (s *Stream) Read(frames int, raiseOnOverflow bool) ([]byte, error) {
	if frames < 0 {
		return nil, ErrInvalidFrameCount
	}
	if !s.isOpen {
		return nil, errStreamClosed()
	}
	if s.inputParameters == nil {
		return nil, newError(CanNotReadFromAnOutputOnlyStream)
	}

	size, err := BufferSize(frames, s.inputParameters.ChannelCount, s.inputParameters.SampleFormat)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)

	code := host.ReadStream(s.handle, buf, frames)
	switch {
	case code == NoError:
		return buf, nil
	case code == InputOverflowed && !raiseOnOverflow:
		return buf, nil
	default:
		s.forceClose()
		return nil, newError(code)
	}
}

// GetWriteAvailable returns the number of frames that can be written without
// blocking.
func (s *Stream) GetWriteAvailable() (int, error) {
	if !s.isOpen {
		return 0, errStreamClosed()
	}

	wa := host.StreamWriteAvailable(s.handle)
	if wa < 0 {
		return 0, newError(ErrorCode(wa))
	}
	return int(wa), nil
}

// GetReadAvailable returns the number of frames that can be read without
// blocking.
func (s *Stream) GetReadAvailable() (int, error) {
	if !s.isOpen {
		return 0, errStreamClosed()
	}

	ra := host.StreamReadAvailable(s.handle)
	if ra < 0 {
		return 0, newError(ErrorCode(ra))
	}
	return int(ra), nil
}

// Info returns the stream's open-time latency and sample-rate snapshot. It
// stays readable after Close.
func (s *Stream) Info() (StreamInfo, error) {
	if s.info == nil {
		return StreamInfo{}, &Error{Code: BadStreamPtr, Text: "No StreamInfo available"}
	}
	return *s.info, nil
}

// InputLatency returns the stream's input latency in seconds from the
// open-time snapshot.
func (s *Stream) InputLatency() (PaTime, error) {
	info, err := s.Info()
	if err != nil {
		return 0, err
	}
	return info.InputLatency, nil
}

// OutputLatency returns the stream's output latency in seconds from the
// open-time snapshot.
func (s *Stream) OutputLatency() (PaTime, error) {
	info, err := s.Info()
	if err != nil {
		return 0, err
	}
	return info.OutputLatency, nil
}

// SampleRate returns the stream's actual sample rate from the open-time
// snapshot.
func (s *Stream) SampleRate() (float64, error) {
	info, err := s.Info()
	if err != nil {
		return 0, err
	}
	return info.SampleRate, nil
}

// Err returns and clears the error recorded by the callback adapter, if any.
// A callback that panicked or returned an invalid continuation code aborts
// the stream on the engine side; the owning goroutine observes the cause
// here.
func (s *Stream) Err() error {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	err := s.pendingErr
	s.pendingErr = nil
	return err
}

func (s *Stream) setPendingErr(err error) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.pendingErr == nil {
		s.pendingErr = err
	}
}
