//go:build js && wasm

// Command reflow-wasm exposes the conversion session to a browser host. Every
// operation is published on a global "reflow" object and reports status as an
// integer: 0 for success, -1 for failure, matching the C wrapper ABI this
// module replaces. getPageCount returns the count, or -1 on failure.
package main

import (
	"context"
	"syscall/js"

	"github.com/ereaderlab/reflow/engine"
	"github.com/ereaderlab/reflow/engine/pdfium"
	"github.com/ereaderlab/reflow/session"
)

const (
	statusOK   = 0
	statusFail = -1
)

var sess *session.Session

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", js.FuncOf(initFn))
	api.Set("cleanup", js.FuncOf(cleanupFn))
	api.Set("version", js.FuncOf(versionFn))
	api.Set("setDevice", status1(func(args []js.Value) error {
		return sessionOrErr().SetDeviceProfile(args[0].String())
	}))
	api.Set("setWidth", status1(func(args []js.Value) error {
		return sessionOrErr().SetOutputWidth(args[0].Int())
	}))
	api.Set("setHeight", status1(func(args []js.Value) error {
		return sessionOrErr().SetOutputHeight(args[0].Int())
	}))
	api.Set("setMargins", status1(func(args []js.Value) error {
		return sessionOrErr().SetMargins(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
	}))
	api.Set("setQuality", status1(func(args []js.Value) error {
		return sessionOrErr().SetQuality(args[0].Int())
	}))
	api.Set("setOcr", status1(func(args []js.Value) error {
		return sessionOrErr().SetOCREnabled(args[0].Bool())
	}))
	api.Set("setPageRange", status1(func(args []js.Value) error {
		return sessionOrErr().SetPageRange(args[0].String())
	}))
	api.Set("processFile", status1(func(args []js.Value) error {
		return sessionOrErr().ProcessFile(context.Background(), args[0].String(), args[1].String())
	}))
	api.Set("getPageCount", js.FuncOf(getPageCountFn))
	js.Global().Set("reflow", api)

	// Block forever; the host drives everything through the exports above.
	select {}
}

// sessionOrErr returns the live session, or an uninitialized placeholder whose
// operations all fail with ErrNotInitialized.
func sessionOrErr() *session.Session {
	if sess == nil {
		return session.New(nil)
	}
	return sess
}

func initFn(js.Value, []js.Value) interface{} {
	if sess != nil {
		// Idempotent, like the session itself.
		return statusOK
	}
	s := session.New(func() (engine.Converter, error) {
		return pdfium.New(pdfium.Config{})
	})
	if err := s.Init(); err != nil {
		return statusFail
	}
	sess = s
	return statusOK
}

func cleanupFn(js.Value, []js.Value) interface{} {
	if sess == nil {
		return statusOK
	}
	err := sess.Close()
	sess = nil
	if err != nil {
		return statusFail
	}
	return statusOK
}

func versionFn(js.Value, []js.Value) interface{} {
	// The engine build string is a constant, so version works before init,
	// as the original wrapper's did.
	if sess == nil {
		return pdfium.Build
	}
	return sess.Version()
}

func getPageCountFn(_ js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return statusFail
	}
	n, err := sessionOrErr().PageCount(context.Background(), args[0].String())
	if err != nil {
		return statusFail
	}
	return n
}

// status1 wraps a session call as a JS function returning 0/-1. A panic from
// missing arguments is reported as failure rather than killing the host.
func status1(call func(args []js.Value) error) js.Func {
	return js.FuncOf(func(_ js.Value, args []js.Value) (ret interface{}) {
		defer func() {
			if recover() != nil {
				ret = statusFail
			}
		}()
		if err := call(args); err != nil {
			return statusFail
		}
		return statusOK
	})
}
