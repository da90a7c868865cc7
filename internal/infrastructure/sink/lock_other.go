//go:build !linux && !darwin

package sink

// lockFile is a no-op where flock is unavailable; the atomic rename still
// keeps readers from seeing partial text.
func lockFile(string) (func(), error) {
	return func() {}, nil
}
