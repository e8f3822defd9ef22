package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/comfortdash/weather-comfort/internal/apperr"
)

func writeCitiesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write cities file: %v", err)
	}
	return path
}

func validCitiesJSON(count int) string {
	out := "["
	for i := 1; i <= count; i++ {
		if i > 1 {
			out += ","
		}
		out += fmt.Sprintf(`{"id": %d, "name": "City %d", "countryCode": "GB"}`, i, i)
	}
	return out + "]"
}

func TestCitiesLoadsValidFile(t *testing.T) {
	path := writeCitiesFile(t, validCitiesJSON(12))
	l := NewLoader(path, zap.NewNop().Sugar())

	cities, err := l.Cities()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 12 {
		t.Fatalf("expected 12 cities, got %d", len(cities))
	}
	if cities[0].ID != 1 || cities[0].Name != "City 1" {
		t.Fatalf("unexpected first city: %+v", cities[0])
	}
}

func TestCitiesMissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop().Sugar())

	_, err := l.Cities()
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestCitiesMalformedFile(t *testing.T) {
	path := writeCitiesFile(t, `{"this is": "not a list of cities"`)
	l := NewLoader(path, zap.NewNop().Sugar())

	_, err := l.Cities()
	if !apperr.Is(err, apperr.KindMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestCitiesTooFewEntries(t *testing.T) {
	path := writeCitiesFile(t, validCitiesJSON(3))
	l := NewLoader(path, zap.NewNop().Sugar())

	_, err := l.Cities()
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCitiesInvalidEntry(t *testing.T) {
	content := validCitiesJSON(10)
	// Break one entry by zeroing its id.
	path := writeCitiesFile(t, content[:1]+`{"id": 0, "name": "Nowhere", "countryCode": "XX"},`+content[1:])
	l := NewLoader(path, zap.NewNop().Sugar())

	_, err := l.Cities()
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCitiesMemoizesSuccessfulLoad(t *testing.T) {
	path := writeCitiesFile(t, validCitiesJSON(10))
	l := NewLoader(path, zap.NewNop().Sugar())

	if _, err := l.Cities(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Corrupt the file; the loader should keep serving the parsed list.
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("failed to overwrite cities file: %v", err)
	}

	cities, err := l.Cities()
	if err != nil {
		t.Fatalf("expected memoized result, got error: %v", err)
	}
	if len(cities) != 10 {
		t.Fatalf("expected 10 memoized cities, got %d", len(cities))
	}
}
