package devices

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

const testYAML = `
server: http://blynk.example.com
devices:
  - name: bedroom_light
    pin: V3
    auth: tok-bed
    default: 0
    group: bedroom
  - name: kitchen_light
    pin: d2
    auth: tok-kit
    default: 1
    group: kitchen
  - name: temperature
    pin: V6
    auth: tok-sens
exclude: [temperature]
groups: [bedroom, kitchen]
`

func loadYAML(t *testing.T, doc string) (*Config, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(doc)); err != nil {
		t.Fatalf("reading config: %v", err)
	}
	return Load(v)
}

func TestLoad(t *testing.T) {
	cfg, err := loadYAML(t, testYAML)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server() != "http://blynk.example.com" {
		t.Errorf("server: got %q", cfg.Server())
	}

	// devices come back in file order
	want := []string{"bedroom_light", "kitchen_light", "temperature"}
	devs := cfg.Devices()
	if len(devs) != len(want) {
		t.Fatalf("devices: got %d, want %d", len(devs), len(want))
	}
	for i, name := range want {
		if devs[i].Name != name {
			t.Errorf("devices[%d]: got %q, want %q", i, devs[i].Name, name)
		}
	}

	dev, err := cfg.Lookup("kitchen_light")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if dev.Pin != "d2" || dev.Auth != "tok-kit" || dev.Default != 1 || dev.Group != "kitchen" {
		t.Errorf("kitchen_light: got %+v", dev)
	}

	if !cfg.Excluded("temperature") || cfg.Excluded("bedroom_light") {
		t.Error("exclusion set mismatch")
	}
	if !cfg.HasGroup("bedroom") || cfg.HasGroup("garage") {
		t.Error("group set mismatch")
	}
}

func TestLoadRejectsBadDefault(t *testing.T) {
	doc := `
devices:
  - name: porch_light
    pin: V1
    auth: tok
    default: 2
`
	if _, err := loadYAML(t, doc); err == nil {
		t.Error("expected error for default outside {0,1}")
	}
}

func TestLoadRejectsEmptyTable(t *testing.T) {
	if _, err := loadYAML(t, `server: http://x`); err == nil {
		t.Error("expected error for empty device table")
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New("", []Device{
		{Name: "light", Pin: "V1", Auth: "a"},
		{Name: "light", Pin: "V2", Auth: "b"},
	}, nil, nil)
	if err == nil {
		t.Error("expected error for duplicate device name")
	}
}

func TestLookupUnknown(t *testing.T) {
	cfg := Builtin()
	_, err := cfg.Lookup("garage_light")
	if !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("error: got %v, want ErrUnknownDevice", err)
	}
}

func TestBuiltinIsValid(t *testing.T) {
	cfg := Builtin()
	if cfg.Server() != DefaultServer {
		t.Errorf("server: got %q", cfg.Server())
	}
	if len(cfg.Devices()) == 0 {
		t.Error("builtin table is empty")
	}
}
