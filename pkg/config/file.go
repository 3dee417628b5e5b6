package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/unit"

	"github.com/buckcalc/buckcalc/pkg/buck"
	"github.com/buckcalc/buckcalc/pkg/utils/ptr"
	"github.com/buckcalc/buckcalc/pkg/utils/siformat"
)

const (
	defaultInputVoltage          = 24.0
	defaultOutputVoltage         = 5.0
	defaultOutputCurrent         = 2.0
	defaultSwitchingFrequency    = 500e3
	defaultEfficiency            = 0.9
	defaultMaxRippleVoltage      = 75e-3
	defaultMaxTransientCurrent   = 2.0
	defaultMaxTransientDeviation = 0.1
)

var (
	defaultFileConfig = &RawFileConfig{
		InputVoltage:          ptr.To(defaultInputVoltage),
		OutputVoltage:         ptr.To(defaultOutputVoltage),
		OutputCurrent:         ptr.To(defaultOutputCurrent),
		SwitchingFrequency:    ptr.To(defaultSwitchingFrequency),
		Efficiency:            ptr.To(defaultEfficiency),
		MaxRippleVoltage:      ptr.To(defaultMaxRippleVoltage),
		MaxTransientCurrent:   ptr.To(defaultMaxTransientCurrent),
		MaxTransientDeviation: ptr.To(defaultMaxTransientDeviation),
		// TODO: this has always shared the transient deviation default (0.1,
		// read as 0.1 nH). An inductance needs its own default; kept until the
		// intended value is decided.
		InputInductanceNanohenries: ptr.To(defaultMaxTransientDeviation),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// RawFileConfig is the on-disk and on-wire form of the parameters. Units are
// V, A, Hz, ratio and nH. Nil fields fall back to the defaults.
type RawFileConfig struct {
	InputVoltage               *float64 `json:"inputVoltage,omitempty"`
	OutputVoltage              *float64 `json:"outputVoltage,omitempty"`
	OutputCurrent              *float64 `json:"outputCurrent,omitempty"`
	SwitchingFrequency         *float64 `json:"switchingFrequency,omitempty"`
	Efficiency                 *float64 `json:"efficiency,omitempty"`
	MaxRippleVoltage           *float64 `json:"maxRippleVoltage,omitempty"`
	MaxTransientCurrent        *float64 `json:"maxTransientCurrent,omitempty"`
	MaxTransientDeviation      *float64 `json:"maxTransientDeviation,omitempty"`
	InputInductanceNanohenries *float64 `json:"inputInductanceNanohenries,omitempty"`
}

// Default returns a copy of the built-in defaults.
func Default() *RawFileConfig {
	return defaultFileConfig.clone()
}

func (r *RawFileConfig) clone() *RawFileConfig {
	out := &RawFileConfig{}
	out.merge(r)
	return out
}

// merge copies every non-nil field of o into r.
func (r *RawFileConfig) merge(o *RawFileConfig) {
	if o == nil {
		return
	}
	for _, field := range Fields {
		if v := *field.Ptr(o); v != nil {
			*field.Ptr(r) = ptr.To(*v)
		}
	}
}

// Field describes one parameter of RawFileConfig.
type Field struct {
	// Key is the JSON key.
	Key string
	// Unit is the symbol of the unit the value is stored in.
	Unit string
	// Ptr returns the address of the field in r.
	Ptr func(r *RawFileConfig) **float64
}

// Fields lists the parameters in display order.
var Fields = []Field{
	{"inputVoltage", "V", func(r *RawFileConfig) **float64 { return &r.InputVoltage }},
	{"outputVoltage", "V", func(r *RawFileConfig) **float64 { return &r.OutputVoltage }},
	{"outputCurrent", "A", func(r *RawFileConfig) **float64 { return &r.OutputCurrent }},
	{"switchingFrequency", "Hz", func(r *RawFileConfig) **float64 { return &r.SwitchingFrequency }},
	{"efficiency", "", func(r *RawFileConfig) **float64 { return &r.Efficiency }},
	{"maxRippleVoltage", "V", func(r *RawFileConfig) **float64 { return &r.MaxRippleVoltage }},
	{"maxTransientCurrent", "A", func(r *RawFileConfig) **float64 { return &r.MaxTransientCurrent }},
	{"maxTransientDeviation", "V", func(r *RawFileConfig) **float64 { return &r.MaxTransientDeviation }},
	{"inputInductanceNanohenries", "nH", func(r *RawFileConfig) **float64 { return &r.InputInductanceNanohenries }},
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c.clone(),
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// value returns the field selected by field, or its default.
func (f *File) value(field func(r *RawFileConfig) **float64) float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(*field(f.c), **field(defaultFileConfig))
}

func (f *File) InputVoltage() unit.Voltage {
	return unit.Voltage(f.value(func(r *RawFileConfig) **float64 { return &r.InputVoltage }))
}

func (f *File) OutputVoltage() unit.Voltage {
	return unit.Voltage(f.value(func(r *RawFileConfig) **float64 { return &r.OutputVoltage }))
}

func (f *File) OutputCurrent() unit.Current {
	return unit.Current(f.value(func(r *RawFileConfig) **float64 { return &r.OutputCurrent }))
}

func (f *File) SwitchingFrequency() unit.Frequency {
	return unit.Frequency(f.value(func(r *RawFileConfig) **float64 { return &r.SwitchingFrequency }))
}

func (f *File) Efficiency() unit.Dimless {
	return unit.Dimless(f.value(func(r *RawFileConfig) **float64 { return &r.Efficiency }))
}

func (f *File) MaxRippleVoltage() unit.Voltage {
	return unit.Voltage(f.value(func(r *RawFileConfig) **float64 { return &r.MaxRippleVoltage }))
}

func (f *File) MaxTransientCurrent() unit.Current {
	return unit.Current(f.value(func(r *RawFileConfig) **float64 { return &r.MaxTransientCurrent }))
}

func (f *File) MaxTransientDeviation() unit.Voltage {
	return unit.Voltage(f.value(func(r *RawFileConfig) **float64 { return &r.MaxTransientDeviation }))
}

func (f *File) InputInductance() unit.Inductance {
	return buck.FromNanohenries(f.value(func(r *RawFileConfig) **float64 { return &r.InputInductanceNanohenries }))
}

func (f *File) OperatingPoint() buck.OperatingPoint {
	return buck.OperatingPoint{
		InputVoltage:          f.InputVoltage(),
		OutputVoltage:         f.OutputVoltage(),
		OutputCurrent:         f.OutputCurrent(),
		SwitchingFrequency:    f.SwitchingFrequency(),
		Efficiency:            f.Efficiency(),
		MaxRippleVoltage:      f.MaxRippleVoltage(),
		MaxTransientCurrent:   f.MaxTransientCurrent(),
		MaxTransientDeviation: f.MaxTransientDeviation(),
		InputInductance:       f.InputInductance(),
	}
}

func (f *File) Raw() *RawFileConfig {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	raw := defaultFileConfig.clone()
	raw.merge(f.c)

	return raw
}

func (f *File) Merge(o *RawFileConfig) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.merge(o)
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.filepath == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}
	if f.filepath == "" {
		return pkgerrors.New("config file path is empty")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	op := f.OperatingPoint()

	return logrus.Fields{
		"vIn":             siformat.FormatValueFactor(float64(op.InputVoltage), "V"),
		"vOut":            siformat.FormatValueFactor(float64(op.OutputVoltage), "V"),
		"iOut":            siformat.FormatValueFactor(float64(op.OutputCurrent), "A"),
		"fSw":             siformat.FormatValueFactor(float64(op.SwitchingFrequency), "Hz"),
		"efficiency":      float64(op.Efficiency),
		"vPPMax":          siformat.FormatValueFactor(float64(op.MaxRippleVoltage), "V"),
		"iOutTrMax":       siformat.FormatValueFactor(float64(op.MaxTransientCurrent), "A"),
		"vOutTrMax":       siformat.FormatValueFactor(float64(op.MaxTransientDeviation), "V"),
		"inputInductance": siformat.FormatValueFactor(float64(op.InputInductance), "H"),
	}
}
