package spindle

// Both are nil by default, which silences the package.
var (
	InfoLogFunc  func(string, ...any)
	DebugLogFunc func(string, ...any)
)

func log(f string, a ...any) {
	if InfoLogFunc != nil {
		InfoLogFunc(f, a...)
	}
}

func debugLog(f string, a ...any) {
	if DebugLogFunc != nil {
		DebugLogFunc(f, a...)
	}
}
