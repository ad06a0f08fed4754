// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

// LoadFixture reads path, failing the test when it cannot.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// DecodeJSON unmarshals an exported document into T.
func DecodeJSON[T any](t testing.TB, data []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	return out
}
