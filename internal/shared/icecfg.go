// Utilities for reading classic ice.config credential files.
package shared

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// IceConfig holds connection settings parsed from an ice.config style file.
//
// Recognized keys are omero.host, omero.port, omero.user and omero.pass,
// the flat key=value format written by server installers.
type IceConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// LoadIceConfig reads an ice.config file and extracts connection credentials.
func LoadIceConfig(path string) (*IceConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ice config: %w", err)
	}

	section := file.Section("")
	cfg := &IceConfig{
		Host: section.Key("omero.host").String(),
		User: section.Key("omero.user").String(),
	}

	cfg.Port = section.Key("omero.port").MustInt(4064)
	cfg.Password = section.Key("omero.pass").String()

	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: omero.host missing from %s", ErrInvalidCredentials, path)
	}

	return cfg, nil
}
