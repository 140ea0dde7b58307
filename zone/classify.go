package zone

import "github.com/miekg/dns"

// Context is the full result of a Find/FindAll call: the classification,
// the matching data (if any), the NS set for a delegation, the search
// path for DNSSEC proof selection, and what GetAdditional needs to
// resolve glue later. It carries no SOA record for negative answers.
type Context struct {
	Code  ResultCode
	Flags ResultFlags

	// Owner is the owner name of the answer: the node's own name on a
	// direct hit, and the original qname (not "*.<x>") on wildcard
	// synthesis. The RRs in RRset keep their stored owner names.
	Owner string

	RRset RdataSet    // the answer itself, for SUCCESS/CNAME/DNAME
	NS    RdataSet    // authoritative NS set, for DELEGATION
	Chain []*ZoneNode // search path, apex first; used by NSEC/NSEC3 callers

	closestEncloser *ZoneNode

	// zd/dnssec/sources back the deferred GetAdditional method (§4.5):
	// sources is every rdata set GetAdditional should scan for embedded
	// name references (the matched rrset, the delegation's NS set, or
	// every rdata set of the node on an ANY query).
	zd      *ZoneData
	dnssec  bool
	sources []RdataSet
}

// ClosestEncloser returns the deepest node found while classifying
// this query, for a caller that needs it to select an NSEC/NSEC3
// proof (e.g. the closest-encloser a wildcard was or wasn't synthesized
// beneath).
func (c Context) ClosestEncloser() *ZoneNode {
	return c.closestEncloser
}

// Find returns the single RRset matching qname/qtype (or the CNAME
// standing in for it, or a DNAME/zone-cut redirection, or a negative
// result), implementing §4.4's type-level classification on top of
// findNode's tree descent. It is grounded on QueryResponder's
// ANY/CNAME-fallback/NXRRSET branches.
func Find(zd *ZoneData, qname string, qtype uint16, opts FindOptions) (ctx Context, err error) {
	// §4.7: negative and wildcard answers carry the zone's signing mode.
	defer func() {
		if err != nil {
			return
		}
		if ctx.Code == NXDomain || ctx.Code == NXRRset || ctx.Flags.Has(ResultWildcard) {
			switch zd.signing {
			case SigningNSEC3:
				ctx.Flags |= ResultNSEC3Signed
			case SigningNSEC:
				ctx.Flags |= ResultNSECSigned
			}
		}
	}()

	res, err := findNode(zd, qname, opts)
	if err != nil {
		return Context{}, err
	}

	if res.Match != ExactMatch {
		// §4.3 step 3: a DNAME or zone cut recorded while descent
		// stopped short of qname outranks the plain NXDOMAIN/NXRRSET
		// outcome that would otherwise apply.
		switch res.Cut.kind {
		case cutDNAME:
			return Context{
				Code: Dname, Owner: res.Cut.node.name, RRset: res.Cut.dn,
				Chain: res.Chain, closestEncloser: res.closestEncloser(),
			}, nil
		case cutDelegation:
			return Context{
				Code: Delegation, Owner: res.Cut.node.name, NS: res.Cut.ns,
				Chain: res.Chain, closestEncloser: res.closestEncloser(),
				zd: zd, dnssec: opts.has(FindDNSSEC), sources: []RdataSet{res.Cut.ns},
			}, nil
		}

		switch res.Match {
		case NotFound:
			return Context{
				Code: NXDomain, Chain: res.Chain, closestEncloser: res.closestEncloser(),
			}, nil
		case PartialMatch:
			// Landed on an empty non-terminal: the name exists in the
			// tree's structure but carries no data, which is NXRRSET
			// (NOERROR/NODATA), never NXDOMAIN (§3 GLOSSARY: ENT).
			return Context{
				Code: NXRRset, Owner: res.Node.name, Chain: res.Chain, closestEncloser: res.closestEncloser(),
			}, nil
		}
	}

	// Exact match (§4.4 step 3): whether the landing node itself
	// delegates is judged directly off its own flags, not off whatever
	// was recorded passing through its ancestors — an ancestor cut
	// walked through under FIND_GLUE_OK never makes the node we
	// actually landed on a delegation.
	node := res.Node
	if node.flags.has(flagCallback) && node != zd.root && qtype != dns.TypeDS && !opts.has(FindGlueOK) {
		if ns, ok := node.rdata.get(dns.TypeNS); ok {
			return Context{
				Code: Delegation, Owner: node.name, NS: ns,
				Chain: res.Chain, closestEncloser: res.closestEncloser(),
				zd: zd, dnssec: opts.has(FindDNSSEC), sources: []RdataSet{ns},
			}, nil
		}
	}

	return classifyAtNode(zd, node, res, qtype, opts)
}

// classifyAtNode applies the ANY/exact-type/CNAME-fallback/NXRRSET
// ladder at a node descent has already landed on, substituting the
// original query name into a wildcard-synthesized answer's owner per
// RFC 4592 §3.1.1.
func classifyAtNode(zd *ZoneData, node *ZoneNode, res FindNodeResult, qtype uint16, opts FindOptions) (Context, error) {
	owner := node.name
	if res.Wildcard != nil {
		owner = res.OrigQName
	}

	ctx := Context{
		Owner: owner, Chain: res.Chain, closestEncloser: res.closestEncloser(),
		zd: zd, dnssec: opts.has(FindDNSSEC),
	}
	if res.Wildcard != nil {
		ctx.Flags |= ResultWildcard
	}

	if qtype == dns.TypeANY {
		all := node.rdata.all()
		if len(all) == 0 {
			ctx.Code = NXRRset
			return ctx, nil
		}
		ctx.Code = Success
		ctx.RRset = RdataSet{Type: dns.TypeANY, RRs: flattenAll(all)}
		ctx.sources = all
		return ctx, nil
	}

	if rs, ok := node.rdata.get(qtype); ok {
		ctx.Code = Success
		ctx.RRset = rs
		ctx.sources = []RdataSet{rs}
		return ctx, nil
	}

	if qtype != dns.TypeCNAME {
		if cn, ok := node.rdata.get(dns.TypeCNAME); ok {
			ctx.Code = Cname
			ctx.RRset = cn
			return ctx, nil
		}
	}

	ctx.Code = NXRRset
	return ctx, nil
}

func flattenAll(sets []RdataSet) []dns.RR {
	var out []dns.RR
	for _, s := range sets {
		out = append(out, s.RRs...)
	}
	return out
}

// FindAll is a convenience wrapper returning every RRset at qname's
// node regardless of qtype, equivalent to Find with qtype ANY but
// without ANY's wire-format implications for the caller.
func FindAll(zd *ZoneData, qname string, opts FindOptions) (Context, error) {
	return Find(zd, qname, dns.TypeANY, opts)
}
