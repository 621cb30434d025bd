package table

import (
	"fmt"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/bitmatch/bits"
	"github.com/wippyai/bitmatch/errors"
)

// Config is the YAML form of a table.
type Config struct {
	Entries []EntryConfig `yaml:"entries"`
	Width   uint          `yaml:"width"`
}

// EntryConfig is the YAML form of one entry. Fields maps single-character
// tags to field names.
type EntryConfig struct {
	Fields  map[string]string `yaml:"fields,omitempty"`
	Name    string            `yaml:"name"`
	Pattern string            `yaml:"pattern"`
	Dynamic bool              `yaml:"dynamic,omitempty"`
}

// ParseConfig decodes a table configuration from YAML.
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return &cfg, nil
		}
		return nil, errors.ParseFailed("table config", err)
	}
	return &cfg, nil
}

// Build creates a table for T from cfg. A non-zero cfg.Width must equal the
// width of T.
func Build[T bits.Word](cfg *Config) (*Table[T], error) {
	if w := bits.Width[T](); cfg.Width != 0 && cfg.Width != w {
		return nil, errors.Load(fmt.Sprintf("table width %d, word has %d bits", cfg.Width, w), nil)
	}

	t := New[T]()
	for i, ec := range cfg.Entries {
		if ec.Name == "" {
			return nil, errors.New(errors.PhaseLoad, errors.KindFieldMissing).
				Path(fmt.Sprintf("entries[%d]", i)).
				Detail("entry has no name").
				Build()
		}

		names, err := fieldNames(ec)
		if err != nil {
			return nil, err
		}

		if ec.Dynamic {
			err = t.AddDynamic(ec.Name, ec.Pattern, names)
		} else {
			err = t.Add(ec.Name, ec.Pattern, names)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, o := range t.Overlaps() {
		Logger().Warn("entries overlap",
			zap.String("first", o.First),
			zap.String("second", o.Second))
	}
	Logger().Info("table loaded",
		zap.Int("entries", t.Len()),
		zap.Uint("width", bits.Width[T]()))
	return t, nil
}

func fieldNames(ec EntryConfig) (map[rune]string, error) {
	if len(ec.Fields) == 0 {
		return nil, nil
	}
	names := make(map[rune]string, len(ec.Fields))
	for key, name := range ec.Fields {
		if utf8.RuneCountInString(key) != 1 {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{ec.Name, key},
				"field key must be a single tag character")
		}
		tag, _ := utf8.DecodeRuneInString(key)
		names[tag] = name
	}
	return names, nil
}

// LoadYAML parses a YAML table configuration and builds a table for T.
func LoadYAML[T bits.Word](r io.Reader) (*Table[T], error) {
	cfg, err := ParseConfig(r)
	if err != nil {
		return nil, err
	}
	return Build[T](cfg)
}
