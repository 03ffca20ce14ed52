// Package devices holds the static device table and the selector
// resolution rules built on top of it.
package devices

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

var ErrUnknownDevice = errors.New("unknown device")

const DefaultServer = "http://blynk-cloud.com"

// Device is one configured endpoint of the Blynk HTTP API.
type Device struct {
	Name string `mapstructure:"name" yaml:"name"`
	Pin  string `mapstructure:"pin" yaml:"pin"`
	Auth string `mapstructure:"auth" yaml:"auth"`
	// Default is 1 for active-low wiring: a raw pin value of 0 then
	// means the device is logically on. This happens e.g. with relays
	// wired as normally closed.
	Default int    `mapstructure:"default" yaml:"default"`
	Group   string `mapstructure:"group" yaml:"group,omitempty"`
}

// Config is the immutable device table: devices in enumeration order,
// the set of devices exempt from toggling, the valid group names and
// the server base URL. Built once at startup and only read afterwards.
type Config struct {
	server  string
	devices []Device
	index   map[string]int
	exclude map[string]struct{}
	groups  map[string]struct{}
}

// New validates and indexes a device table. Every device outside the
// exclusion set must have a 0/1 inversion flag.
func New(server string, devs []Device, exclude, groups []string) (*Config, error) {
	if server == "" {
		server = DefaultServer
	}
	c := &Config{
		server:  server,
		devices: devs,
		index:   make(map[string]int, len(devs)),
		exclude: make(map[string]struct{}, len(exclude)),
		groups:  make(map[string]struct{}, len(groups)),
	}
	for _, name := range exclude {
		c.exclude[name] = struct{}{}
	}
	for _, name := range groups {
		c.groups[name] = struct{}{}
	}
	for i, d := range devs {
		if d.Name == "" {
			return nil, fmt.Errorf("device %d has no name", i)
		}
		if _, ok := c.index[d.Name]; ok {
			return nil, fmt.Errorf("duplicate device %q", d.Name)
		}
		if !c.Excluded(d.Name) && d.Default != 0 && d.Default != 1 {
			return nil, fmt.Errorf("device %q: default must be 0 or 1, got %d", d.Name, d.Default)
		}
		c.index[d.Name] = i
	}
	return c, nil
}

// Builtin is the compiled-in table, used when no config file is given.
// Replace the auth tokens with your own, or ship a config file instead.
func Builtin() *Config {
	c, err := New(DefaultServer,
		[]Device{
			{Name: "bedroom_light", Pin: "V3", Auth: "<auth_token>", Default: 0, Group: "bedroom"},
			{Name: "kitchen_light", Pin: "d2", Auth: "<auth_token>", Default: 1, Group: "kitchen"},
			{Name: "temperature", Pin: "V6", Auth: "<auth_token>"},
			{Name: "humidity", Pin: "V5", Auth: "<auth_token>"},
		},
		[]string{"temperature", "humidity"},
		[]string{"bedroom", "kitchen"})
	if err != nil {
		panic(err)
	}
	return c
}

// Load builds a Config from a viper instance that has already read the
// config file. Expected shape:
//
//	server: http://blynk-cloud.com
//	devices:
//	  - name: bedroom_light
//	    pin: V3
//	    auth: xxxx
//	    default: 0
//	    group: bedroom
//	exclude: [temperature, humidity]
//	groups: [bedroom, kitchen]
func Load(v *viper.Viper) (*Config, error) {
	var devs []Device
	if err := v.UnmarshalKey("devices", &devs); err != nil {
		return nil, fmt.Errorf("parsing devices: %w", err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("no devices configured")
	}
	return New(
		v.GetString("server"),
		devs,
		v.GetStringSlice("exclude"),
		v.GetStringSlice("groups"),
	)
}

func (c *Config) Server() string {
	return c.server
}

// Devices returns the table in enumeration order. Callers must not
// modify the returned slice.
func (c *Config) Devices() []Device {
	return c.devices
}

func (c *Config) Lookup(name string) (Device, error) {
	i, ok := c.index[name]
	if !ok {
		return Device{}, fmt.Errorf("%w: %q", ErrUnknownDevice, name)
	}
	return c.devices[i], nil
}

// Excluded reports whether name is exempt from on/off/flip actions.
func (c *Config) Excluded(name string) bool {
	_, ok := c.exclude[name]
	return ok
}

// HasGroup reports whether name is a configured group name.
func (c *Config) HasGroup(name string) bool {
	_, ok := c.groups[name]
	return ok
}
