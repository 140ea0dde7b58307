/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package zone

import (
	"strings"

	"github.com/miekg/dns"
)

// getNSECWitness returns the NSEC owner whose "next" pointer proves
// that name does not exist: the closest real predecessor of name in
// canonical order, synthesizing the NSEC RR's type bitmap and
// next-name fields on demand from the zone tree. Grounded on the
// teacher's nsec.go ComputeNsec, which walks the same sorted name list
// but precomputes the whole chain up front; here the witness for a
// single query is found on demand via ZoneData.previousNode, which
// findNode's search already makes cheap to reach.
//
// An empty non-terminal owns no NSEC record of its own (§4.6), so a
// predecessor that turns out to be one is skipped in favor of the next
// predecessor before it, repeating until a genuinely-owned name is
// found; by the zone-signing invariant this must terminate at the
// latest at the apex, which always carries its own NSEC.
func getNSECWitness(zd *ZoneData, name string) (dns.RR, error) {
	if zd.signing != SigningNSEC {
		return nil, &DataSourceError{Zone: zd.origin, Msg: "getNSECWitness called on a zone that is not NSEC-signed"}
	}

	cur := name
	for i := 0; i <= len(zd.order); i++ {
		prev, ok := zd.previousNode(cur)
		if !ok {
			return nil, &DataSourceError{Zone: zd.origin, Msg: "zone has no owner names to build an NSEC witness from"}
		}
		if !prev.isEmptyNonTerminal() {
			return buildNSEC(zd, prev)
		}
		cur = prev.name
	}
	return nil, &DataSourceError{Zone: zd.origin, Msg: "NSEC witness search exhausted the zone without finding a non-empty predecessor"}
}

// getNSECForNXRRSET returns the NSEC record at node itself (not its
// predecessor), proving the type bitmap has no entry for the queried
// type. node must exist exactly in the zone.
func getNSECForNXRRSET(zd *ZoneData, node *ZoneNode) (dns.RR, error) {
	if zd.signing != SigningNSEC {
		return nil, &DataSourceError{Zone: zd.origin, Msg: "getNSECForNXRRSET called on a zone that is not NSEC-signed"}
	}
	return buildNSEC(zd, node)
}

// GetNSECWitness is the exported counterpart to getNSECWitness, for
// callers outside this package building a full NXDOMAIN response that
// needs the covering NSEC record.
func GetNSECWitness(zd *ZoneData, name string) (dns.RR, error) {
	return getNSECWitness(zd, name)
}

// GetNSECForNXRRSET is the exported counterpart to getNSECForNXRRSET.
func GetNSECForNXRRSET(zd *ZoneData, node *ZoneNode) (dns.RR, error) {
	return getNSECForNXRRSET(zd, node)
}

func buildNSEC(zd *ZoneData, node *ZoneNode) (dns.RR, error) {
	next := zd.successor(node)

	types := node.rdata.types()
	tmap := make([]string, 0, len(types)+1)
	tmap = append(tmap, "NSEC")
	for _, t := range types {
		tmap = append(tmap, dns.TypeToString[t])
	}

	items := []string{node.name, "NSEC", next.name}
	items = append(items, tmap...)
	return dns.NewRR(strings.Join(items, " "))
}
