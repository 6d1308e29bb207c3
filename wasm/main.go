//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("BkgaAnnotate", js.FuncOf(jsAnnotate))
	js.Global().Set("BkgaDiff", js.FuncOf(jsDiff))
	js.Global().Set("BkgaHover", js.FuncOf(jsHover))
	js.Global().Set("BkgaGetBuiltinRules", js.FuncOf(jsGetBuiltinRules))

	// Keep WASM running
	<-make(chan struct{})
}
