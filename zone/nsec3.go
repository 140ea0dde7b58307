package zone

import (
	"strings"

	"github.com/miekg/dns"
)

// NSEC3Result is the outcome of a FindNSEC3 closest-encloser/covering
// proof search, following RFC 5155 §7.2.1.
type NSEC3Result struct {
	// Matched reports whether the search found an exact NSEC3 hash
	// match (the closest encloser exists) rather than exhausting one
	// covering attempt with recursive=false.
	Matched bool

	// ClosestLabels is the label count of the name the search stopped
	// at: the matched name's own label count when Matched, otherwise
	// the query name's own label count (a single, non-recursive
	// attempt only ever looks at the query name itself).
	ClosestLabels uint8

	ClosestProof dns.RR // NSEC3 at the match, or covering it when !Matched
	NextProof    dns.RR // NSEC3 covering the next-closer name; nil if none was needed
}

// FindNSEC3 searches the zone's hash-ordered NSEC3 namespace for name's
// closest encloser, per §4.8. Unlike a plain-tree walk, the search
// never descends the zone's own label tree: every candidate suffix of
// name is hashed and looked up directly in the hash-ordered namespace,
// exactly as the teacher's own ground truth
// (zone_finder.cc's findNSEC3, ~lines 870-945) does it.
//
// recursive controls whether the search keeps shortening name one
// label at a time until it finds a match (true — the full
// closest-encloser proof a wildcard or NXDOMAIN answer needs), or
// returns after a single covering attempt against name itself (false —
// the cheaper check a caller that already knows the encloser makes
// when it only needs one covering witness).
func FindNSEC3(zd *ZoneData, name string, recursive bool) (NSEC3Result, error) {
	if zd.signing != SigningNSEC3 || zd.nsec3 == nil {
		return NSEC3Result{}, &DataSourceError{Zone: zd.origin, Msg: "FindNSEC3 called on a zone that is not NSEC3-signed"}
	}

	name = dns.Fqdn(name)
	if !dns.IsSubDomain(zd.origin, name) {
		return NSEC3Result{}, &OutOfZone{Zone: zd.origin, Name: name}
	}

	qlabels := dns.CountLabel(name)
	olabels := dns.CountLabel(zd.origin)

	var covering *nsec3Node

	for labels := qlabels; labels >= olabels; labels-- {
		hash := hashOwner(zd, stripToLabels(name, labels))

		if match, ok := zd.nsec3.subtree.Get(hash); ok {
			res := NSEC3Result{Matched: true, ClosestLabels: uint8(labels)}
			proof, err := nsec3ToRR(zd, match)
			if err != nil {
				return NSEC3Result{}, err
			}
			res.ClosestProof = proof
			if covering != nil {
				next, err := nsec3ToRR(zd, covering)
				if err != nil {
					return NSEC3Result{}, err
				}
				res.NextProof = next
			}
			return res, nil
		}

		cov, err := coveringNSEC3(zd, hash)
		if err != nil {
			return NSEC3Result{}, err
		}
		covering = cov

		if !recursive {
			proof, err := nsec3ToRR(zd, covering)
			if err != nil {
				return NSEC3Result{}, err
			}
			return NSEC3Result{Matched: false, ClosestLabels: uint8(labels), ClosestProof: proof}, nil
		}
	}

	return NSEC3Result{}, &DataSourceError{Zone: zd.origin, Msg: "broken NSEC3 zone: closest-encloser search exhausted every suffix down to the origin without a hash match"}
}

// stripToLabels returns the FQDN formed by name's rightmost labels
// suffix, truncated to exactly labels labels - e.g.
// stripToLabels("a.b.example.com.", 2) is "example.com.". This is the
// "strip_name_to" operation §4.8 hashes at each step of the
// closest-encloser search.
func stripToLabels(name string, labels int) string {
	all := dns.SplitDomainName(dns.Fqdn(name))
	if labels > len(all) {
		labels = len(all)
	}
	if labels < 0 {
		labels = 0
	}
	return dns.Fqdn(strings.Join(all[len(all)-labels:], "."))
}

func hashOwner(zd *ZoneData, name string) string {
	return strings.ToLower(dns.HashName(dns.Fqdn(name), zd.nsec3.Algorithm, zd.nsec3.Iterations, zd.nsec3.Salt))
}

// coveringNSEC3 returns the NSEC3 record whose owner hash is the
// canonical predecessor of hash in the hash-ordered subtree, wrapping
// around to the largest hash in the zone if hash sorts before
// everything present (RFC 5155 §7.2.1's ring semantics).
func coveringNSEC3(zd *ZoneData, hash string) (*nsec3Node, error) {
	order := zd.nsec3.order
	if len(order) == 0 {
		return nil, &DataSourceError{Zone: zd.origin, Msg: "NSEC3 zone has no hashed owner names"}
	}

	lo, hi := 0, len(order)
	for lo < hi {
		mid := (lo + hi) / 2
		if order[mid] < hash {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	idx := lo - 1
	if idx < 0 {
		idx = len(order) - 1 // wrap to the largest hash in the zone
	}

	n, ok := zd.nsec3.subtree.Get(order[idx])
	if !ok {
		return nil, &DataSourceError{Zone: zd.origin, Msg: "NSEC3 subtree index inconsistent with stored records"}
	}
	return n, nil
}

func nsec3ToRR(zd *ZoneData, n *nsec3Node) (dns.RR, error) {
	if len(n.rrs.RRs) == 0 {
		return nil, &DataSourceError{Zone: zd.origin, Msg: "NSEC3 node has no stored RR"}
	}
	return n.rrs.RRs[0], nil
}
