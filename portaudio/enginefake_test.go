package portaudio

import (
	"sync"
	"testing"
)

// fakeEngine is a scripted hostEngine for hermetic tests: it emulates the
// native engine's contract (device table, handle lifecycle, benign idempotent
// codes) and lets tests inject failure codes and drive callback periods
// synchronously.
type fakeEngine struct {
	mu sync.Mutex

	initCount int
	devices   []DeviceInfo
	hostApis  []HostApiInfo
	defIn     int
	defOut    int

	streams map[*fakeStream]bool

	// Scripted failure codes; NoError means succeed.
	openCode  ErrorCode
	startCode ErrorCode
	stopCode  ErrorCode
	writeCode ErrorCode
	readCode  ErrorCode

	writeAvail int64
	readAvail  int64
	streamTime PaTime
	cpuLoad    float64

	lastOpen *openRequest
}

type fakeStream struct {
	req     openRequest
	started bool
	closed  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		devices: []DeviceInfo{
			{
				Index: 0, Name: "Fake Duplex", HostApiIndex: 0,
				MaxInputChannels: 2, MaxOutputChannels: 2,
				DefaultLowInputLatency: 0.01, DefaultLowOutputLatency: 0.01,
				DefaultHighInputLatency: 0.1, DefaultHighOutputLatency: 0.1,
				DefaultSampleRate: 44100,
			},
			{
				Index: 1, Name: "Fake Mono Mic", HostApiIndex: 0,
				MaxInputChannels: 1, MaxOutputChannels: 0,
				DefaultLowInputLatency: 0.02, DefaultHighInputLatency: 0.2,
				DefaultSampleRate: 48000,
			},
			{
				Index: 2, Name: "Fake Speakers", HostApiIndex: 0,
				MaxInputChannels: 0, MaxOutputChannels: 8,
				DefaultLowOutputLatency: 0.005, DefaultHighOutputLatency: 0.05,
				DefaultSampleRate: 48000,
			},
		},
		hostApis: []HostApiInfo{
			{Type: ALSA, Name: "Fake ALSA", DeviceCount: 3, DefaultInputDevice: 0, DefaultOutputDevice: 0},
		},
		defIn:      0,
		defOut:     0,
		streams:    make(map[*fakeStream]bool),
		writeAvail: 1024,
		readAvail:  1024,
		streamTime: 1.5,
		cpuLoad:    0.02,
	}
}

// withFakeEngine swaps the package's engine for a fake for the duration of
// the test.
func withFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	fe := newFakeEngine()
	prev := host
	host = fe
	t.Cleanup(func() { host = prev })
	return fe
}

func (e *fakeEngine) Initialize() ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initCount++
	return NoError
}

func (e *fakeEngine) Terminate() ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initCount--
	return NoError
}

func (e *fakeEngine) Version() int        { return 19 << 16 }
func (e *fakeEngine) VersionText() string { return "Fake PortAudio" }

func (e *fakeEngine) ErrorText(code ErrorCode) string { return errorText(code) }

func (e *fakeEngine) LastHostError() (HostApiTypeID, int, string, bool) {
	return ALSA, -32, "Broken pipe", true
}

func (e *fakeEngine) DeviceCount() int { return len(e.devices) }

func (e *fakeEngine) DeviceInfo(index int) (*DeviceInfo, bool) {
	if index < 0 || index >= len(e.devices) {
		return nil, false
	}
	di := e.devices[index]
	return &di, true
}

func (e *fakeEngine) DefaultInputDevice() int  { return e.defIn }
func (e *fakeEngine) DefaultOutputDevice() int { return e.defOut }
func (e *fakeEngine) HostApiCount() int        { return len(e.hostApis) }

func (e *fakeEngine) HostApiInfo(index int) (*HostApiInfo, bool) {
	if index < 0 || index >= len(e.hostApis) {
		return nil, false
	}
	hi := e.hostApis[index]
	return &hi, true
}

func (e *fakeEngine) DefaultHostApi() int { return 0 }

func (e *fakeEngine) IsFormatSupported(input, output *PaStreamParameters, sampleRate float64) ErrorCode {
	if code := e.checkDirection(input, true); code != NoError {
		return code
	}
	return e.checkDirection(output, false)
}

func (e *fakeEngine) checkDirection(p *PaStreamParameters, isInput bool) ErrorCode {
	if p == nil {
		return NoError
	}
	di, ok := e.DeviceInfo(p.DeviceIndex)
	if !ok {
		return InvalidDevice
	}
	limit := di.MaxOutputChannels
	if isInput {
		limit = di.MaxInputChannels
	}
	if p.ChannelCount > limit {
		return InvalidChannelCount
	}
	return NoError
}

func (e *fakeEngine) OpenStream(req openRequest) (any, ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.openCode != NoError {
		return nil, e.openCode
	}
	if code := e.checkDirection(req.Input, true); code != NoError {
		return nil, code
	}
	if code := e.checkDirection(req.Output, false); code != NoError {
		return nil, code
	}

	fs := &fakeStream{req: req}
	e.streams[fs] = true
	e.lastOpen = &fs.req
	return fs, NoError
}

func (e *fakeEngine) CloseStream(handle any) ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	fs := handle.(*fakeStream)
	if fs.closed {
		return BadStreamPtr
	}
	fs.closed = true
	delete(e.streams, fs)
	return NoError
}

func (e *fakeEngine) StartStream(handle any) ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.startCode != NoError {
		return e.startCode
	}
	fs := handle.(*fakeStream)
	if fs.started {
		return StreamIsNotStopped
	}
	fs.started = true
	return NoError
}

func (e *fakeEngine) StopStream(handle any) ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopCode != NoError {
		return e.stopCode
	}
	fs := handle.(*fakeStream)
	if !fs.started {
		return StreamIsStopped
	}
	fs.started = false
	return NoError
}

func (e *fakeEngine) AbortStream(handle any) ErrorCode {
	return e.StopStream(handle)
}

func (e *fakeEngine) StreamStopped(handle any) (bool, ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !handle.(*fakeStream).started, NoError
}

func (e *fakeEngine) StreamActive(handle any) (bool, ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return handle.(*fakeStream).started, NoError
}

func (e *fakeEngine) StreamInfo(handle any) (*StreamInfo, bool) {
	fs := handle.(*fakeStream)
	info := &StreamInfo{StructVersion: 1, SampleRate: fs.req.SampleRate}
	if fs.req.Input != nil {
		info.InputLatency = fs.req.Input.SuggestedLatency
	}
	if fs.req.Output != nil {
		info.OutputLatency = fs.req.Output.SuggestedLatency
	}
	return info, true
}

func (e *fakeEngine) StreamTime(any) PaTime     { return e.streamTime }
func (e *fakeEngine) StreamCPULoad(any) float64 { return e.cpuLoad }

func (e *fakeEngine) ReadStream(handle any, buf []byte, frames int) ErrorCode {
	if e.readCode != NoError {
		return e.readCode
	}
	// Deterministic ramp so tests can tell the buffer was filled.
	for i := range buf {
		buf[i] = byte(i)
	}
	return NoError
}

func (e *fakeEngine) WriteStream(handle any, buf []byte, frames int) ErrorCode {
	return e.writeCode
}

func (e *fakeEngine) StreamReadAvailable(any) int64  { return e.readAvail }
func (e *fakeEngine) StreamWriteAvailable(any) int64 { return e.writeAvail }

// firePeriod drives one callback period against an open callback stream the
// way the engine's real-time thread would: input filled with a ramp pattern,
// output zeroed for the adapter to fill. Returns the continuation code the
// engine would see and the output buffer contents.
func (e *fakeEngine) firePeriod(t *testing.T, s *Stream, frames int, flags StreamCallbackFlags) (StreamCallbackResult, []byte) {
	t.Helper()

	fs := s.handle.(*fakeStream)
	if fs.req.Callback == nil {
		t.Fatal("firePeriod on a blocking-mode stream")
	}

	var input, output []byte
	if p := fs.req.Input; p != nil {
		size, err := BufferSize(frames, p.ChannelCount, p.SampleFormat)
		if err != nil {
			t.Fatalf("sizing input period: %v", err)
		}
		input = make([]byte, size)
		for i := range input {
			input[i] = byte(i + 1)
		}
	}
	if p := fs.req.Output; p != nil {
		size, err := BufferSize(frames, p.ChannelCount, p.SampleFormat)
		if err != nil {
			t.Fatalf("sizing output period: %v", err)
		}
		output = make([]byte, size)
	}

	ti := &StreamCallbackTimeInfo{InputBufferAdcTime: 0.5, CurrentTime: 1.0, OutputBufferDacTime: 1.5}
	code := fs.req.Callback(input, output, frames, ti, flags)
	return code, output
}
