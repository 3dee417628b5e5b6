package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/types"
	"github.com/buckcalc/buckcalc/pkg/utils/ptr"
	"github.com/buckcalc/buckcalc/pkg/version"
)

func serve(t *testing.T, conf config.Config, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(conf).Routes().ServeHTTP(w, req)

	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) *types.Result {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res types.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return &res
}

func TestCalculateDefaults(t *testing.T) {
	for _, body := range []string{"", "{}"} {
		res := decodeResult(t, serve(t, config.NewFileFromConfig(nil, ""), http.MethodPost, "/calculate", body))

		if math.Abs(res.DutyCycle-0.2315) > 1e-4 {
			t.Errorf("expected duty cycle of about 0.2315, got %g", res.DutyCycle)
		}
		if math.Abs(res.MinCeramicCapacitanceMicrofarads-9.488) > 1e-3 {
			t.Errorf("expected about 9.488 uF ceramic, got %g", res.MinCeramicCapacitanceMicrofarads)
		}
		if math.Abs(res.MinBulkCapacitanceMicrofarads-1.2993) > 1e-4 {
			t.Errorf("expected about 1.2993 uF bulk, got %g", res.MinBulkCapacitanceMicrofarads)
		}
		if res.Parameters == nil || *res.Parameters.InputVoltage != 24 {
			t.Errorf("expected the effective parameters to be echoed back, got %+v", res.Parameters)
		}
	}
}

func TestCalculateOverridesServerConfig(t *testing.T) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{InputVoltage: ptr.To(12.0)}, "")

	res := decodeResult(t, serve(t, conf, http.MethodPost, "/calculate", `{"outputVoltage": 12, "efficiency": 1}`))
	if res.DutyCycle != 1 {
		t.Fatalf("expected unity duty cycle, got %g", res.DutyCycle)
	}

	// The request must not leak into the server config.
	if v := conf.OutputVoltage(); v != 5 {
		t.Fatalf("expected server output voltage to stay at 5 V, got %v", v)
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"inputVoltage":`, ""},
		{"wrong type", `{"inputVoltage": "high"}`, ""},
		{"zero frequency", `{"switchingFrequency": 0}`, "switching frequency"},
		{"zero deviation", `{"maxTransientDeviation": 0}`, "max transient deviation"},
		{"underflowing duty cycle", `{"inputVoltage": 1e-200, "efficiency": 1e-200}`, "not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, config.NewFileFromConfig(nil, ""), http.MethodPost, "/calculate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Fatalf("expected body to mention %q, got %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestGetDefaults(t *testing.T) {
	conf := config.NewFileFromConfig(&config.RawFileConfig{SwitchingFrequency: ptr.To(1e6)}, "")
	w := serve(t, conf, http.MethodGet, "/defaults", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var raw config.RawFileConfig
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode defaults: %v", err)
	}
	if raw.SwitchingFrequency == nil || *raw.SwitchingFrequency != 1e6 {
		t.Errorf("expected switching frequency 1e6, got %v", raw.SwitchingFrequency)
	}
	if raw.Efficiency == nil || *raw.Efficiency != 0.9 {
		t.Errorf("expected default efficiency 0.9, got %v", raw.Efficiency)
	}
}

func TestGetVersion(t *testing.T) {
	w := serve(t, config.NewFileFromConfig(nil, ""), http.MethodGet, "/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var v string
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if v != version.Version {
		t.Fatalf("expected %s, got %s", version.Version, v)
	}
}

func TestListenUnixSocket(t *testing.T) {
	p := t.TempDir() + "/buckcalc.sock"

	l, err := listen("", p)
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	_ = l.Close()

	// A second listen replaces whatever the first one left behind.
	l, err = listen("", p)
	if err != nil {
		t.Fatalf("listen on a stale socket failed: %v", err)
	}
	_ = l.Close()
}
