package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bloomsim/internal/hashing"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Engine       EngineConfig       `yaml:"engine"`
	Presentation PresentationConfig `yaml:"presentation"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type EngineConfig struct {
	TableSize         int      `yaml:"table_size"`
	SlotCapacity      int      `yaml:"slot_capacity"`
	ReferenceCapacity int      `yaml:"reference_capacity"`
	HashFunctions     []string `yaml:"hash_functions"`
}

type PresentationConfig struct {
	// HighlightDelayMS re-applies query highlighting after this many
	// milliseconds. Zero disables the effect.
	HighlightDelayMS int  `yaml:"highlight_delay_ms"`
	ShowAfterCommand bool `yaml:"show_after_command"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

func (p PresentationConfig) HighlightDelay() time.Duration {
	return time.Duration(p.HighlightDelayMS) * time.Millisecond
}

func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TableSize:         10,
			SlotCapacity:      10,
			ReferenceCapacity: 10,
			HashFunctions:     []string{hashing.NameLength},
		},
		Presentation: PresentationConfig{
			HighlightDelayMS: 300,
			ShowAfterCommand: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	// Override with environment variables
	if size := os.Getenv("BLOOMSIM_TABLE_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("%w: BLOOMSIM_TABLE_SIZE=%q", ErrInvalid, size)
		}
		config.Engine.TableSize = n
	}
	if hashes := os.Getenv("BLOOMSIM_HASH_FUNCTIONS"); hashes != "" {
		config.Engine.HashFunctions = splitList(hashes)
	}
	if level := os.Getenv("BLOOMSIM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Engine.TableSize <= 0 {
		return fmt.Errorf("%w: engine.table_size must be positive, got %d", ErrInvalid, c.Engine.TableSize)
	}
	if c.Engine.SlotCapacity <= 0 {
		return fmt.Errorf("%w: engine.slot_capacity must be positive, got %d", ErrInvalid, c.Engine.SlotCapacity)
	}
	if c.Engine.ReferenceCapacity <= 0 {
		return fmt.Errorf("%w: engine.reference_capacity must be positive, got %d", ErrInvalid, c.Engine.ReferenceCapacity)
	}
	if len(c.Engine.HashFunctions) == 0 {
		return fmt.Errorf("%w: engine.hash_functions must not be empty", ErrInvalid)
	}
	if _, err := hashing.LookupAll(c.Engine.HashFunctions); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Presentation.HighlightDelayMS < 0 {
		return fmt.Errorf("%w: presentation.highlight_delay_ms must not be negative", ErrInvalid)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
