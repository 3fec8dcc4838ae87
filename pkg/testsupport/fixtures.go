package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFixture reads a testdata file, naming the path when it is missing.
func LoadFixture(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: fixture %s: %w", path, err)
	}
	return data, nil
}

// LoadGolden decodes a JSON case table into v. Unknown keys fail the load so a
// typo in a golden file cannot silently drop an expectation.
func LoadGolden(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("testsupport: golden %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("testsupport: golden %s: %w", path, err)
	}
	return nil
}
