package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const failedDir = "_failed"

// Fail writes reason to <dir>/_failed/<bundle>/<entry>.txt. Slashes in
// entry are flattened so every report sits directly in the bundle's folder.
func Fail(dir, bundle, entry, reason string) error {
	path := filepath.Join(dir, failedDir, bundle, strings.ReplaceAll(entry, "/", "_")+".txt")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := fmt.Fprintln(file, reason); err != nil {
		return err
	}
	return nil
}
