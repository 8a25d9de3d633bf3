//go:build portaudio

package portaudio

/*
#cgo pkg-config: portaudio-2.0
#include <portaudio.h>
#include <stdlib.h>

PaDeviceIndex Pa_GetDefaultInputDevice(void);
PaDeviceIndex Pa_GetDefaultOutputDevice(void);
PaHostApiIndex Pa_GetDefaultHostApi(void);
const PaHostErrorInfo* Pa_GetLastHostErrorInfo(void);

// Forward declaration of the Go callback bridge.
extern int goStreamBridge(void *input, void *output,
                          unsigned long frameCount,
                          void *timeInfo,
                          unsigned long statusFlags,
                          long streamId);

// C trampoline usable as a PaStreamCallback function pointer. userData points
// to a malloc'd long containing the registry ID of the stream.
static int paStreamTrampoline(const void *input, void *output,
                              unsigned long frameCount,
                              const PaStreamCallbackTimeInfo* timeInfo,
                              PaStreamCallbackFlags statusFlags,
                              void *userData) {
    long streamId = *(long*)userData;
    return goStreamBridge((void*)input, output, frameCount,
                          (void*)timeInfo, (unsigned long)statusFlags, streamId);
}

static int openStreamWithCallback(void** stream,
                                  void* inputParameters,
                                  void* outputParameters,
                                  double sampleRate,
                                  unsigned long framesPerBuffer,
                                  unsigned long streamFlags,
                                  void *userData) {
    return Pa_OpenStream((PaStream**)stream,
                        (const PaStreamParameters*)inputParameters,
                        (const PaStreamParameters*)outputParameters,
                        sampleRate, framesPerBuffer,
                        (PaStreamFlags)streamFlags,
                        paStreamTrampoline, userData);
}
*/
import "C"
import (
	"sync"
	"unsafe"
)

func newHostEngine() hostEngine {
	return &cgoEngine{}
}

// cgoEngine drives the PortAudio C library.
type cgoEngine struct{}

// cgoStream is the opaque handle OpenStream returns in this backend.
type cgoStream struct {
	ptr unsafe.Pointer
	// bridgeID is non-zero for callback streams; bridgeIDPtr is the
	// C-allocated copy of it passed as userData.
	bridgeID    int
	bridgeIDPtr unsafe.Pointer
}

// bridgeEntry holds what the exported bridge needs to marshal one stream's
// callbacks: the Go callback and the per-direction frame strides.
type bridgeEntry struct {
	callback  engineCallback
	inStride  int
	outStride int
	// timeInfo is pre-allocated to avoid allocation in the callback hot path.
	// Safe because the engine invokes callbacks sequentially per stream.
	timeInfo StreamCallbackTimeInfo
}

// Bridge registry mapping stream IDs to entries. Integer IDs instead of Go
// pointers keep cgo pointer-passing rules satisfied.
var (
	bridgeRegistry   = make(map[int]*bridgeEntry)
	bridgeRegistryMu sync.RWMutex
	nextBridgeID     = 1
)

func registerBridge(entry *bridgeEntry) int {
	bridgeRegistryMu.Lock()
	defer bridgeRegistryMu.Unlock()

	id := nextBridgeID
	nextBridgeID++
	bridgeRegistry[id] = entry
	return id
}

func unregisterBridge(id int) {
	bridgeRegistryMu.Lock()
	defer bridgeRegistryMu.Unlock()
	delete(bridgeRegistry, id)
}

func bridgeFor(id int) (*bridgeEntry, bool) {
	bridgeRegistryMu.RLock()
	defer bridgeRegistryMu.RUnlock()
	entry, ok := bridgeRegistry[id]
	return entry, ok
}

//export goStreamBridge
func goStreamBridge(input, output unsafe.Pointer,
	frameCount C.ulong,
	timeInfo unsafe.Pointer,
	statusFlags C.ulong,
	streamID C.long) C.int {

	entry, ok := bridgeFor(int(streamID))
	if !ok {
		// Stream already closed; nothing to marshal to.
		return C.int(Abort)
	}

	frames := int(frameCount)

	var inputBuf []byte
	if input != nil && entry.inStride > 0 {
		size := frames * entry.inStride
		if size > 0 && size <= (1<<20) { // Sanity check: max 1MB
			inputBuf = (*[1 << 20]byte)(input)[:size:size]
		}
	}

	var outputBuf []byte
	if output != nil && entry.outStride > 0 {
		size := frames * entry.outStride
		if size > 0 && size <= (1<<20) {
			outputBuf = (*[1 << 20]byte)(output)[:size:size]
		}
	}

	var ti *StreamCallbackTimeInfo
	if timeInfo != nil {
		cti := (*C.PaStreamCallbackTimeInfo)(timeInfo)
		entry.timeInfo.InputBufferAdcTime = PaTime(cti.inputBufferAdcTime)
		entry.timeInfo.CurrentTime = PaTime(cti.currentTime)
		entry.timeInfo.OutputBufferDacTime = PaTime(cti.outputBufferDacTime)
		ti = &entry.timeInfo
	}

	return C.int(entry.callback(inputBuf, outputBuf, frames, ti, StreamCallbackFlags(statusFlags)))
}

func (e *cgoEngine) Initialize() ErrorCode {
	return ErrorCode(C.Pa_Initialize())
}

func (e *cgoEngine) Terminate() ErrorCode {
	return ErrorCode(C.Pa_Terminate())
}

func (e *cgoEngine) Version() int {
	return int(C.Pa_GetVersion())
}

func (e *cgoEngine) VersionText() string {
	vi := C.Pa_GetVersionInfo()
	return C.GoString(vi.versionText)
}

func (e *cgoEngine) ErrorText(code ErrorCode) string {
	return C.GoString(C.Pa_GetErrorText(C.int(code)))
}

func (e *cgoEngine) LastHostError() (HostApiTypeID, int, string, bool) {
	hostErr := C.Pa_GetLastHostErrorInfo()
	if hostErr == nil {
		return 0, 0, "", false
	}
	return HostApiTypeID(hostErr.hostApiType), int(hostErr.errorCode), C.GoString(hostErr.errorText), true
}

func (e *cgoEngine) DeviceCount() int {
	return int(C.Pa_GetDeviceCount())
}

func (e *cgoEngine) DeviceInfo(index int) (*DeviceInfo, bool) {
	di := C.Pa_GetDeviceInfo(C.int(index))
	if di == nil {
		return nil, false
	}

	return &DeviceInfo{
		Index:                    index,
		Name:                     C.GoString(di.name),
		HostApiIndex:             int(di.hostApi),
		MaxInputChannels:         int(di.maxInputChannels),
		MaxOutputChannels:        int(di.maxOutputChannels),
		DefaultLowInputLatency:   PaTime(di.defaultLowInputLatency),
		DefaultLowOutputLatency:  PaTime(di.defaultLowOutputLatency),
		DefaultHighInputLatency:  PaTime(di.defaultHighInputLatency),
		DefaultHighOutputLatency: PaTime(di.defaultHighOutputLatency),
		DefaultSampleRate:        float64(di.defaultSampleRate),
	}, true
}

func (e *cgoEngine) DefaultInputDevice() int {
	return int(C.Pa_GetDefaultInputDevice())
}

func (e *cgoEngine) DefaultOutputDevice() int {
	return int(C.Pa_GetDefaultOutputDevice())
}

func (e *cgoEngine) HostApiCount() int {
	return int(C.Pa_GetHostApiCount())
}

func (e *cgoEngine) HostApiInfo(index int) (*HostApiInfo, bool) {
	hi := C.Pa_GetHostApiInfo(C.int(index))
	if hi == nil {
		return nil, false
	}

	return &HostApiInfo{
		Type:                HostApiTypeID(hi._type),
		Name:                C.GoString(hi.name),
		DeviceCount:         int(hi.deviceCount),
		DefaultInputDevice:  int(hi.defaultInputDevice),
		DefaultOutputDevice: int(hi.defaultOutputDevice),
	}, true
}

func (e *cgoEngine) DefaultHostApi() int {
	return int(C.Pa_GetDefaultHostApi())
}

func cParameters(p *PaStreamParameters) *C.PaStreamParameters {
	if p == nil {
		return nil
	}
	cp := &C.PaStreamParameters{
		device:           C.int(p.DeviceIndex),
		channelCount:     C.int(p.ChannelCount),
		sampleFormat:     C.PaSampleFormat(p.SampleFormat),
		suggestedLatency: C.double(p.SuggestedLatency),
	}
	if ext, ok := p.HostApiSpecificStreamInfo.(unsafe.Pointer); ok {
		cp.hostApiSpecificStreamInfo = ext
	}
	return cp
}

func (e *cgoEngine) IsFormatSupported(input, output *PaStreamParameters, sampleRate float64) ErrorCode {
	return ErrorCode(C.Pa_IsFormatSupported(cParameters(input), cParameters(output), C.double(sampleRate)))
}

func (e *cgoEngine) OpenStream(req openRequest) (any, ErrorCode) {
	inParams := cParameters(req.Input)
	outParams := cParameters(req.Output)

	handle := &cgoStream{}

	if req.Callback == nil {
		errCode := C.Pa_OpenStream(&handle.ptr,
			inParams,
			outParams,
			C.double(req.SampleRate),
			C.ulong(req.FramesPerBuffer),
			C.ulong(req.Flags),
			nil,
			nil)
		if errCode != C.paNoError {
			return nil, ErrorCode(errCode)
		}
		return handle, NoError
	}

	entry := &bridgeEntry{callback: req.Callback}
	if req.Input != nil {
		entry.inStride = req.Input.ChannelCount * sampleWidth(req.Input.SampleFormat)
	}
	if req.Output != nil {
		entry.outStride = req.Output.ChannelCount * sampleWidth(req.Output.SampleFormat)
	}
	id := registerBridge(entry)

	// C memory for the registry ID, passed as userData. Avoids
	// unsafe.Pointer(uintptr(int)), which fails checkptr under -race.
	idPtr := (*C.long)(C.malloc(C.size_t(unsafe.Sizeof(C.long(0)))))
	*idPtr = C.long(id)

	errCode := C.openStreamWithCallback(&handle.ptr,
		unsafe.Pointer(inParams),
		unsafe.Pointer(outParams),
		C.double(req.SampleRate),
		C.ulong(req.FramesPerBuffer),
		C.ulong(req.Flags),
		unsafe.Pointer(idPtr))

	if errCode != C.paNoError {
		C.free(unsafe.Pointer(idPtr))
		unregisterBridge(id)
		return nil, ErrorCode(errCode)
	}

	handle.bridgeID = id
	handle.bridgeIDPtr = unsafe.Pointer(idPtr)
	return handle, NoError
}

// CloseStream closes the native stream first, so the engine has stopped
// invoking the trampoline before the bridge entry and its userData are
// released.
func (e *cgoEngine) CloseStream(handle any) ErrorCode {
	h := handle.(*cgoStream)
	code := ErrorCode(C.Pa_CloseStream(h.ptr))
	if h.bridgeID != 0 {
		unregisterBridge(h.bridgeID)
		h.bridgeID = 0
	}
	if h.bridgeIDPtr != nil {
		C.free(h.bridgeIDPtr)
		h.bridgeIDPtr = nil
	}
	return code
}

func (e *cgoEngine) StartStream(handle any) ErrorCode {
	return ErrorCode(C.Pa_StartStream(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) StopStream(handle any) ErrorCode {
	return ErrorCode(C.Pa_StopStream(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) AbortStream(handle any) ErrorCode {
	return ErrorCode(C.Pa_AbortStream(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) StreamStopped(handle any) (bool, ErrorCode) {
	rc := int(C.Pa_IsStreamStopped(handle.(*cgoStream).ptr))
	if rc < 0 {
		return false, ErrorCode(rc)
	}
	return rc == 1, NoError
}

func (e *cgoEngine) StreamActive(handle any) (bool, ErrorCode) {
	rc := int(C.Pa_IsStreamActive(handle.(*cgoStream).ptr))
	if rc < 0 {
		return false, ErrorCode(rc)
	}
	return rc == 1, NoError
}

func (e *cgoEngine) StreamInfo(handle any) (*StreamInfo, bool) {
	si := C.Pa_GetStreamInfo(handle.(*cgoStream).ptr)
	if si == nil {
		return nil, false
	}
	return &StreamInfo{
		StructVersion: int(si.structVersion),
		InputLatency:  PaTime(si.inputLatency),
		OutputLatency: PaTime(si.outputLatency),
		SampleRate:    float64(si.sampleRate),
	}, true
}

func (e *cgoEngine) StreamTime(handle any) PaTime {
	return PaTime(C.Pa_GetStreamTime(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) StreamCPULoad(handle any) float64 {
	return float64(C.Pa_GetStreamCpuLoad(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) ReadStream(handle any, buf []byte, frames int) ErrorCode {
	return ErrorCode(C.Pa_ReadStream(handle.(*cgoStream).ptr, unsafe.Pointer(&buf[0]), C.ulong(frames)))
}

func (e *cgoEngine) WriteStream(handle any, buf []byte, frames int) ErrorCode {
	return ErrorCode(C.Pa_WriteStream(handle.(*cgoStream).ptr, unsafe.Pointer(&buf[0]), C.ulong(frames)))
}

func (e *cgoEngine) StreamReadAvailable(handle any) int64 {
	return int64(C.Pa_GetStreamReadAvailable(handle.(*cgoStream).ptr))
}

func (e *cgoEngine) StreamWriteAvailable(handle any) int64 {
	return int64(C.Pa_GetStreamWriteAvailable(handle.(*cgoStream).ptr))
}
