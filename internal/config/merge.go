package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keySchemaVersion = "schema_version"
	keySource        = "source"
	keyView          = "view"
	keyOutput        = "output"
	keyCache         = "cache"
	keyLogging       = "logging"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are ignored during merge.
//
//nolint:gochecknoglobals // static lookup table
var knownTopLevelKeys = map[string]bool{
	keySchemaVersion: true,
	keySource:        true,
	keyView:          true,
	keyOutput:        true,
	keyCache:         true,
	keyLogging:       true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// target. A section present in the overlay replaces the whole section;
// absent sections are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// decodeSection decodes node into a zero value before assigning it so the
// overlay replaces the section instead of merging into it.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keySchemaVersion:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.SchemaVersion = v
	case keySource:
		var v SourceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Source = v
	case keyView:
		var v ViewConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.View = v
	case keyOutput:
		var v OutputConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyCache:
		var v CacheConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Cache = v
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
