//go:build soda

// Package native binds libsoda.so through cgo. Build with -tags soda and
// libsoda.so next to this package or on the linker path. At run time the
// library is found by the system loader (LD_LIBRARY_PATH).
package native

/*
#cgo LDFLAGS: -L${SRCDIR} -lsoda
#include <stdint.h>
#include <stdlib.h>

typedef void (*SodaResultHandler)(const char*, int, void*);

typedef struct {
	const char* soda_config;
	int soda_config_size;
	SodaResultHandler callback;
	void* callback_handle;
} SodaConfig;

void* CreateExtendedSodaAsync(SodaConfig config);
void ExtendedSodaStart(void* soda_async_handle);
void ExtendedAddAudio(void* soda_async_handle, const char* audio_buffer, int audio_buffer_size);
void DeleteExtendedSodaAsync(void* soda_async_handle);

extern void sodaResultTrampoline(char* response, int size, void* user_data);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/eleven-am/soda-stream/internal/engine"
)

type Engine struct{}

func New() (*Engine, error) {
	return &Engine{}, nil
}

func (e *Engine) Name() string {
	return "native"
}

func (e *Engine) Create(config []byte, cb engine.Callback) (engine.Instance, error) {
	h := cgo.NewHandle(cb)

	// The user data slot holds the cgo.Handle in C memory so no Go pointer
	// crosses into the engine.
	userData := (*C.uintptr_t)(C.malloc(C.size_t(unsafe.Sizeof(C.uintptr_t(0)))))
	*userData = C.uintptr_t(h)

	cfg := C.CBytes(config)
	handle := C.CreateExtendedSodaAsync(C.SodaConfig{
		soda_config:      (*C.char)(cfg),
		soda_config_size: C.int(len(config)),
		callback:         C.SodaResultHandler(C.sodaResultTrampoline),
		callback_handle:  unsafe.Pointer(userData),
	})
	inst := &instance{handle: handle, config: cfg, userData: userData, cb: h}
	if handle == nil {
		inst.release()
		return nil, nil
	}
	return inst, nil
}

type instance struct {
	handle   unsafe.Pointer
	config   unsafe.Pointer
	userData *C.uintptr_t
	cb       cgo.Handle
}

func (i *instance) Start() error {
	C.ExtendedSodaStart(i.handle)
	return nil
}

func (i *instance) AddAudio(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}
	C.ExtendedAddAudio(i.handle, (*C.char)(unsafe.Pointer(&chunk[0])), C.int(len(chunk)))
	return nil
}

func (i *instance) Destroy() error {
	C.DeleteExtendedSodaAsync(i.handle)
	i.release()
	return nil
}

func (i *instance) release() {
	C.free(i.config)
	C.free(unsafe.Pointer(i.userData))
	i.cb.Delete()
}
