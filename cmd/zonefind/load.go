/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"fmt"
	"os"

	"github.com/johanix/zonefind/zone"
	"github.com/miekg/dns"
)

// loadZone reads a zone file with miekg/dns's own zone parser (the
// wire/text parsing this module's core explicitly does not own, per
// its scope) and replays every RR into a zone.ZoneData, grouping
// same-owner, same-type records into a single RdataSet the way a real
// loader must before handing the tree to the lookup core.
func loadZone(cfg *Config) (*zone.ZoneData, error) {
	f, err := os.Open(cfg.Zone.File)
	if err != nil {
		return nil, fmt.Errorf("error opening zone file %q: %w", cfg.Zone.File, err)
	}
	defer f.Close()

	signing := zone.SigningNone
	switch cfg.Zone.Signing {
	case "nsec":
		signing = zone.SigningNSEC
	case "nsec3":
		signing = zone.SigningNSEC3
	}

	if signing == zone.SigningNSEC3 && cfg.Zone.NSEC3PolicyFile != "" {
		policy, err := loadNSEC3PolicyFile(cfg.Zone.NSEC3PolicyFile)
		if err != nil {
			return nil, err
		}
		cfg.Zone.NSEC3 = *policy
	}

	zd := zone.NewZoneData(cfg.Zone.Name, signing)
	if signing == zone.SigningNSEC3 {
		if err := zd.SetNSEC3Params(
			cfg.Zone.NSEC3.Algorithm, cfg.Zone.NSEC3.Iterations,
			cfg.Zone.NSEC3.Salt, cfg.Zone.NSEC3.OptOut,
		); err != nil {
			return nil, err
		}
	}

	type key struct {
		name  string
		rtype uint16
	}
	pending := make(map[key][]dns.RR)
	var order []key

	zp := dns.NewZoneParser(f, dns.Fqdn(cfg.Zone.Name), cfg.Zone.File)
	for rr, ok := zp.Next(); ok; rr, ok = zp.Next() {
		k := key{name: rr.Header().Name, rtype: rr.Header().Rrtype}
		if _, seen := pending[k]; !seen {
			order = append(order, k)
		}
		pending[k] = append(pending[k], rr)
	}
	if err := zp.Err(); err != nil {
		return nil, fmt.Errorf("error parsing zone file %q: %w", cfg.Zone.File, err)
	}

	for _, k := range order {
		if k.rtype == dns.TypeNSEC3 {
			if err := installNSEC3(zd, k.name, pending[k]); err != nil {
				return nil, err
			}
			continue
		}
		if err := zd.SetRdata(k.name, zone.RdataSet{Type: k.rtype, RRs: pending[k]}); err != nil {
			return nil, err
		}
	}

	zd.Finalize()
	return zd, nil
}

// installNSEC3 records an NSEC3 RR read straight off a pre-signed
// zone file. The first label of its owner name is already the
// base32hex hash label RFC 5155 defines (that is the entire point of
// NSEC3 over NSEC), and that bare label is the key FindNSEC3 looks up;
// the original unhashed owner name it covers is not recoverable from
// the zone file alone, so it is left blank here.
func installNSEC3(zd *zone.ZoneData, hashedOwner string, rrs []dns.RR) error {
	hashLabel := hashedOwner
	if labels := dns.SplitDomainName(hashedOwner); len(labels) > 0 {
		hashLabel = labels[0]
	}
	return zd.InsertNSEC3(hashLabel, "", zone.RdataSet{Type: dns.TypeNSEC3, RRs: rrs})
}
