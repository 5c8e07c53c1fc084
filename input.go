package fontview

import "os"

// ValidateInput checks that path names an existing regular file.
// It is called before any window or GPU work.
func ValidateInput(path string) error {
	if path == "" {
		return &InputError{Path: path}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &InputError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &InputError{Path: path, Err: ErrNotRegularFile}
	}
	return nil
}
