package client

import (
	"errors"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/server"
	"github.com/buckcalc/buckcalc/pkg/utils/ptr"
	"github.com/buckcalc/buckcalc/pkg/version"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.New(config.NewFileFromConfig(nil, "")).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestCalculate(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	res, err := c.Calculate(&config.RawFileConfig{OutputVoltage: ptr.To(3.3)})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	want := 3.3 / (24 * 0.9)
	if math.Abs(res.DutyCycle-want) > 1e-12 {
		t.Fatalf("expected duty cycle %g, got %g", want, res.DutyCycle)
	}
	if res.Parameters == nil || *res.Parameters.OutputVoltage != 3.3 {
		t.Fatalf("expected parameters to be echoed back, got %+v", res.Parameters)
	}
}

func TestCalculateNilParams(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	res, err := c.Calculate(nil)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if math.Abs(res.MinCeramicCapacitanceMicrofarads-9.488) > 1e-3 {
		t.Fatalf("expected about 9.488 uF, got %g", res.MinCeramicCapacitanceMicrofarads)
	}
}

func TestCalculateBadRequest(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	_, err := c.Calculate(&config.RawFileConfig{Efficiency: ptr.To(0.0)})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestGetDefaultsAndVersion(t *testing.T) {
	c := NewClient(newTestServer(t).URL + "/")

	conf, err := c.GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults failed: %v", err)
	}
	if conf.InputVoltage == nil || *conf.InputVoltage != 24 {
		t.Fatalf("expected default input voltage 24, got %v", conf.InputVoltage)
	}

	v, err := c.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion failed: %v", err)
	}
	if v != version.Version {
		t.Fatalf("expected %s, got %s", version.Version, v)
	}
}

func TestNotFound(t *testing.T) {
	c := NewClient(newTestServer(t).URL)

	if _, err := c.Get("/nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnixSocket(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "buckcalc.sock")
	l, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	srv := &http.Server{Handler: server.New(config.NewFileFromConfig(nil, "")).Routes()}
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	res, err := NewClient(sock).Calculate(nil)
	if err != nil {
		t.Fatalf("Calculate over unix socket failed: %v", err)
	}
	if math.Abs(res.MinBulkCapacitanceMicrofarads-1.2993) > 1e-4 {
		t.Fatalf("expected about 1.2993 uF, got %g", res.MinBulkCapacitanceMicrofarads)
	}
}

func TestServerNotRunning(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "missing.sock")

	if _, err := NewClient(sock).GetVersion(); !errors.Is(err, ErrServerNotRunning) {
		t.Fatalf("expected ErrServerNotRunning, got %v", err)
	}
}
