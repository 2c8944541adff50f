//go:build !unix

package fs

// Without access(2) the directory is treated as protected, so writes go
// through the elevation broker.
func writable(string) bool {
	return false
}
