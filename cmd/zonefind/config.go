/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the zonefind CLI's configuration, loaded by viper from a
// YAML file and flags, and checked with go-playground/validator the
// same way the teacher's Config struct is, just scaled down to what a
// read-only lookup demo actually needs instead of a full server's
// listener/API/database/agent configuration.
type Config struct {
	Zone struct {
		Name            string      `yaml:"name" validate:"required"`
		File            string      `yaml:"file" validate:"required"`
		Signing         string      `yaml:"signing" validate:"omitempty,oneof=none nsec nsec3"`
		NSEC3           NSEC3Policy `yaml:"nsec3"`
		NSEC3PolicyFile string      `yaml:"nsec3_policy_file"`
	} `yaml:"zone"`

	Log struct {
		File    string `yaml:"file"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"log"`
}

// NSEC3Policy is the subset of RFC 5155 parameters the loader needs
// to rebuild the zone's hash-ordered namespace.
type NSEC3Policy struct {
	Algorithm  uint8  `yaml:"algorithm"`
	Iterations uint16 `yaml:"iterations"`
	Salt       string `yaml:"salt"`
	OptOut     bool   `yaml:"opt_out"`
}

var globalValidator = validator.New()

func loadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %q: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := globalValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
