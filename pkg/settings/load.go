package settings

import (
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a YAML configuration file, fills unset fields with defaults and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	return Decode(f)
}

// Decode is Load for an already opened source.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints on any settings value.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
