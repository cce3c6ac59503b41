//go:build windows

package download

// terminate kills outright on Windows, so the helper has nothing to ignore
func ignoreTerminate() {}
