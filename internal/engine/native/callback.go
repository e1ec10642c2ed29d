//go:build soda

package native

// #include <stdint.h>
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/eleven-am/soda-stream/internal/engine"
)

//export sodaResultTrampoline
func sodaResultTrampoline(response *C.char, size C.int, userData unsafe.Pointer) {
	if userData == nil || size < 0 {
		return
	}
	h := cgo.Handle(*(*C.uintptr_t)(userData))
	cb, ok := h.Value().(engine.Callback)
	if !ok {
		return
	}
	buf := C.GoBytes(unsafe.Pointer(response), size)
	cb(buf, int(size))
}
