package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	VendorID      uint16        `yaml:"vendor_id"`
	ProductID     uint16        `yaml:"product_id"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	Notifications bool          `yaml:"notifications"`
}

func LoadConfig(filename string) (*Config, error) {
	// Default configuration
	config := &Config{
		VendorID:      PULSAR_VID,
		ProductID:     PULSAR_PID,
		ReadTimeout:   2 * time.Second,
		Notifications: true,
	}

	// Try to load from file
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config file
			if err := SaveConfig(config, filename); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			if verbose {
				fmt.Printf("📄 Created default config file: %s\n", filename)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filename, data, 0644)
}
