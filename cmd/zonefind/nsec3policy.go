/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadNSEC3PolicyFile reads a standalone NSEC3 parameter fixture, used
// when a demo zone file predates NSEC3PARAM support and the hash
// parameters have to be supplied out of band rather than read from
// the zone itself.
func loadNSEC3PolicyFile(path string) (*NSEC3Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading NSEC3 policy file %q: %w", path, err)
	}

	var policy NSEC3Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("error parsing NSEC3 policy file %q: %w", path, err)
	}
	return &policy, nil
}
