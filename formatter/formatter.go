// Package formatter rewrites level fixtures into their canonical YAML form.
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/sectored/level"
)

// Canonical returns the canonical encoding of a level file's contents.
func Canonical(data []byte) ([]byte, error) {
	w, err := level.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// levelFiles lists every *.yaml file under dir.
func levelFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".yaml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return files, nil
}

// Format rewrites every level file under dir in canonical form.
func Format(dir string) error {
	fmt.Println("Formatting level files...")

	files, err := levelFiles(dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		formatted, err := Canonical(data)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}
		if bytes.Equal(data, formatted) {
			continue
		}
		if err := os.WriteFile(path, formatted, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("  formatted %s\n", path)
	}

	fmt.Println("✅ Formatting completed")
	return nil
}

// Check reports the level files under dir that are not in canonical form
// without modifying them.
func Check(dir string) error {
	fmt.Println("Checking level file formatting...")

	files, err := levelFiles(dir)
	if err != nil {
		return err
	}
	var unformatted []string
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		formatted, err := Canonical(data)
		if err != nil {
			return fmt.Errorf("checking %s: %w", path, err)
		}
		if !bytes.Equal(data, formatted) {
			unformatted = append(unformatted, path)
		}
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("%d files need formatting:\n  %s", len(unformatted), strings.Join(unformatted, "\n  "))
	}

	fmt.Println("✅ Format check completed")
	return nil
}
