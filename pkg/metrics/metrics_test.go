package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wordlister_test_total",
		Help: "Test counter",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	orig := Gatherer
	Gatherer = reg
	defer func() { Gatherer = orig }()

	path := filepath.Join(t.TempDir(), "wordlister.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "wordlister_test_total 3") {
		t.Errorf("textfile missing counter:\n%s", data)
	}
}

func TestWriteTextfile_Errors(t *testing.T) {
	if err := WriteTextfile(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "missing", "wordlister.prom")
	if err := WriteTextfile(bad); err == nil {
		t.Error("Expected error for missing directory")
	}
}
