// Copyright (c) 2024 Johan Stenstam, johani@johani.org

// Package zone implements the authoritative in-memory zone lookup core:
// given a pre-loaded zone's labelled tree, a query name and a query type,
// it classifies the answer (SUCCESS, CNAME, DELEGATION, DNAME, NXRRSET,
// NXDOMAIN) and returns the matching record set, honoring wildcards
// (RFC 4592), zone cuts, DNAME redirection (RFC 6672) and DNSSEC
// negative proofs via NSEC (RFC 4035) and NSEC3 (RFC 5155).
//
// The package owns no network surface, does no zone-file I/O and does
// not compose full DNS response messages; it is a pure, read-only lookup
// library meant to be called directly from a caller's query path.
package zone
