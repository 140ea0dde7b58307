package zone

import (
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// GetAdditional resolves the in-zone records that accompany a matched
// answer: NS targets' glue, and other embedded name references (MX,
// SRV) that a caller assembling a full response would otherwise have to
// look up separately. It is the deferred counterpart to §4.4's answer
// classification, only run when a caller actually wants the additional
// section, not on every lookup. Grounded on FindGlue/FindGlueSimple
// (auth_utils.go/delegation_utils.go), generalized from "only NS glue"
// to any rdata set whose type carries embedded name references.
func (c Context) GetAdditional(requestedTypes []uint16) []dns.RR {
	if c.zd == nil || len(c.sources) == 0 {
		return nil
	}

	var out []dns.RR
	seen := make(map[string]bool)

	for _, rs := range c.sources {
		for _, target := range embeddedNames(rs) {
			rel, _ := compareNames(target, c.zd.origin)
			if rel != RelationEqual && rel != RelationSubdomain {
				continue // out of zone; caller resolves elsewhere
			}

			key := strings.ToLower(target) + "/" + strconv.Itoa(int(rs.Type))
			if seen[key] {
				continue
			}
			seen[key] = true

			aopts := FindDefault
			if c.dnssec {
				aopts |= FindDNSSEC
			}
			if rs.Type == dns.TypeNS {
				aopts |= FindGlueOK
			}

			res, err := findNode(c.zd, target, aopts)
			if err != nil || res.Match != ExactMatch {
				continue // only exact-match successes carry additional data
			}
			// §4.5 step 3: the node itself is a zone cut (or a DNAME,
			// treated the same way per §9) and glue is not allowed.
			if res.Node.flags.has(flagCallback) && !aopts.has(FindGlueOK) {
				continue
			}

			for _, t := range requestedTypes {
				if set, ok := res.Node.rdata.get(t); ok {
					out = append(out, set.RRs...)
				}
			}
		}
	}
	return out
}

// embeddedNames extracts the target names an rdata set's records carry
// that require additional-section resolution: NS delegation targets,
// and the usual MX/SRV target fields.
func embeddedNames(rs RdataSet) []string {
	var names []string
	for _, rr := range rs.RRs {
		switch r := rr.(type) {
		case *dns.NS:
			names = append(names, r.Ns)
		case *dns.MX:
			names = append(names, r.Mx)
		case *dns.SRV:
			names = append(names, r.Target)
		}
	}
	return names
}
