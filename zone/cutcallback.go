package zone

import "github.com/miekg/dns"

// cutKind distinguishes why descent stopped at a callback node.
type cutKind int

const (
	cutNone cutKind = iota
	cutDelegation
	cutDNAME
)

// cutState is what the descent callback reports when it fires on a
// node flagged flagCallback.
type cutState struct {
	kind cutKind
	node *ZoneNode
	ns   RdataSet // present when kind == cutDelegation
	dn   RdataSet // present when kind == cutDNAME
}

// checkCut implements the three-rule zone-cut/DNAME callback: called
// for every node the descent passes through on its way to qname (not
// for the node it lands on), and a no-op unless the node is flagged
// flagCallback. It is grounded on delegation_utils.go's
// FindDelegation ancestor walk and queryresponder.go's apex-exemption
// handling, reworked into a callback fired during descent rather than
// a second pass over the name after the fact.
//
// Rule 1: a DNAME takes precedence over an NS at the same node,
// including at the zone apex, where both may legitimately co-exist
// (the apex's own NS names the zone's authoritative servers, but a
// DNAME placed there still redirects everything beneath it). DNAME
// detection therefore happens before any apex exemption is applied.
//
// Rule 2: the zone apex itself is never an NS-based cut (the apex
// always carries NS for the zone's own authoritative servers, and
// that NS RRset is answer data, not a delegation away from the zone).
//
// Rule 3: an NS RRset at a non-apex node marks a zone cut; descent
// must stop there for everything except a DS query, which is answered
// from the parent side per RFC 4035 §5.2 (adjudicated by the caller,
// since checkCut does not have qtype context).
func checkCut(n *ZoneNode, isApex bool) cutState {
	if !n.flags.has(flagCallback) {
		return cutState{kind: cutNone, node: n}
	}
	if dn, ok := n.rdata.get(dns.TypeDNAME); ok {
		return cutState{kind: cutDNAME, node: n, dn: dn}
	}
	if isApex {
		return cutState{kind: cutNone, node: n}
	}
	if ns, ok := n.rdata.get(dns.TypeNS); ok {
		return cutState{kind: cutDelegation, node: n, ns: ns}
	}
	return cutState{kind: cutNone, node: n}
}

// cutTracker accumulates the highest DNAME and the highest NS-based zone
// cut seen while descending the tree for one query, grounded on
// zone_finder.cc's FindState/cutCallback: "we perform callback check
// only for the highest zone cut in the rare case of nested zone cuts."
// A DNAME never itself stops the walk (its priority over a recorded cut
// is resolved only once the walk halts for some other reason); an
// NS-based cut stops the walk unless FIND_GLUE_OK is set, but only for
// the first (shallowest) one reached — any deeper, nested cut always
// stops the walk regardless of the option, so glue resolution can never
// cross a second administrative boundary.
type cutTracker struct {
	glueOK bool
	dname  *cutState
	cut    *cutState
}

// visit runs the callback for a node descent passes through; the node
// descent ultimately lands on is never visited. It reports whether the
// walk may continue past n.
func (t *cutTracker) visit(n *ZoneNode, isApex bool) bool {
	cs := checkCut(n, isApex)
	switch cs.kind {
	case cutDNAME:
		if t.dname == nil {
			t.dname = &cs
		}
		return true
	case cutDelegation:
		if t.cut != nil {
			return false
		}
		t.cut = &cs
		return t.glueOK
	default:
		return true
	}
}

// stopResult is the cutState to report when the walk halts short of an
// exact match: a DNAME found anywhere on the path outranks a recorded
// NS cut, since DNAME takes precedence even at the apex where both may
// coexist (§4.2). An exact match never consults this: whether the
// landing node itself delegates is decided directly off its own flags
// by the classifier (§4.4 step 3), not by what was recorded passing
// through its ancestors.
func (t *cutTracker) stopResult() cutState {
	if t.dname != nil {
		return *t.dname
	}
	if t.cut != nil {
		return *t.cut
	}
	return cutState{kind: cutNone}
}
