package app

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"lanchat/internal/transport"
)

const (
	defaultLogLevel = "NOTICE"

	// DefaultSecret is the shared secret used when none is configured. Peers
	// running with no configuration can talk to each other, and anyone on the
	// LAN can read them.
	DefaultSecret = "secret"
)

// Config is the lanchat configuration file.
type Config struct {
	// Group is the multicast group configuration.
	Group *Group

	// Secret optionally pins the shared secret. The keystore is consulted
	// when this section is absent.
	Secret *Secret

	// Logging is the logging configuration.
	Logging *Logging

	// Metrics is the metrics configuration.
	Metrics *Metrics
}

// Group is the multicast group configuration.
type Group struct {
	// Address is the IPv4 multicast group address.
	Address string

	// Port is the UDP port.
	Port int

	// Interface is the network interface to join on. Empty selects the
	// system default.
	Interface string

	// TTL is the multicast hop limit.
	TTL int
}

func (g *Group) validate() error {
	if g.Address == "" {
		g.Address = transport.DefaultGroup
	}
	if g.Port == 0 {
		g.Port = transport.DefaultPort
	}
	if g.TTL == 0 {
		g.TTL = transport.DefaultTTL
	}
	ip := net.ParseIP(g.Address).To4()
	if ip == nil || !ip.IsMulticast() {
		return fmt.Errorf("config: Group: Address '%v' is not an IPv4 multicast address", g.Address)
	}
	if g.Port < 1 || g.Port > 65535 {
		return fmt.Errorf("config: Group: Port %d is out of range", g.Port)
	}
	if g.TTL < 1 || g.TTL > 255 {
		return fmt.Errorf("config: Group: TTL %d is out of range", g.TTL)
	}
	return nil
}

// Secret pins the shared secret as text or hex. At most one may be set.
type Secret struct {
	Text string
	Hex  string
}

// Bytes returns the configured secret, or nil when none is set.
func (s *Secret) Bytes() ([]byte, error) {
	switch {
	case s == nil:
		return nil, nil
	case s.Text != "":
		return []byte(s.Text), nil
	case s.Hex != "":
		return hex.DecodeString(s.Hex)
	}
	return nil, nil
}

func (s *Secret) validate() error {
	if s.Text != "" && s.Hex != "" {
		return errors.New("config: Secret: Text and Hex are mutually exclusive")
	}
	if s.Hex != "" {
		if _, err := hex.DecodeString(s.Hex); err != nil {
			return fmt.Errorf("config: Secret: Hex is invalid: %w", err)
		}
	}
	return nil
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stderr will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// Metrics is the metrics configuration.
type Metrics struct {
	// Address is the host:port serving /metrics. Empty disables the endpoint.
	Address string
}

// Default returns a configuration with every section at its default.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic(err)
	}
	return cfg
}

// FixupAndValidate applies defaults to config entries and validates the
// configuration sections.
func (c *Config) FixupAndValidate() error {
	// Handle missing sections if possible.
	if c.Group == nil {
		c.Group = new(Group)
	}
	if c.Logging == nil {
		c.Logging = new(Logging)
	}
	if c.Metrics == nil {
		c.Metrics = new(Metrics)
	}

	if err := c.Group.validate(); err != nil {
		return err
	}
	if c.Secret != nil {
		if err := c.Secret.validate(); err != nil {
			return err
		}
	}
	return c.Logging.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)

	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses, and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
