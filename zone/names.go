package zone

import (
	"strings"

	"github.com/miekg/dns"
)

// compareNames computes the BIND-style NameComparisonResult relation
// between a and b: whether they are equal, one a subdomain of the
// other, or whether they only share a common ancestor. commonLabels
// counts the labels shared from the root (TLD) inward.
func compareNames(a, b string) (rel Relation, commonLabels int) {
	a = dns.Fqdn(strings.ToLower(a))
	b = dns.Fqdn(strings.ToLower(b))

	if a == b {
		return RelationEqual, dns.CountLabel(a)
	}

	la := reversedLabels(a)
	lb := reversedLabels(b)

	n := len(la)
	if len(lb) < n {
		n = len(lb)
	}
	for commonLabels = 0; commonLabels < n; commonLabels++ {
		if la[commonLabels] != lb[commonLabels] {
			break
		}
	}

	switch {
	case commonLabels == len(la) && commonLabels < len(lb):
		return RelationSuperdomain, commonLabels
	case commonLabels == len(lb) && commonLabels < len(la):
		return RelationSubdomain, commonLabels
	default:
		return RelationCommonAncestor, commonLabels
	}
}

// reversedLabels splits name into its labels and reverses them, so the
// result reads root-label-first (e.g. "www.example.com." becomes
// ["com", "example", "www"]). This is the order the zone tree is
// walked in, and the order canonical DNS name comparison (RFC 4034
// §6.1) is defined in.
func reversedLabels(name string) []string {
	labels := dns.SplitDomainName(name)
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return labels
}

// relativeLabels returns the labels of name that lie below origin, in
// root-to-leaf (i.e. tree descent) order. name must be contained in
// origin's zone or OutOfZone is returned.
func relativeLabels(name, origin string) ([]string, error) {
	name = dns.Fqdn(name)
	origin = dns.Fqdn(origin)

	if !dns.IsSubDomain(origin, name) {
		return nil, &OutOfZone{Zone: origin, Name: name}
	}

	all := reversedLabels(name)
	originLabels := dns.CountLabel(origin)
	return all[originLabels:], nil
}

// canonicalLess reports whether a sorts before b under RFC 4034 §6.1
// canonical DNS name ordering: compare labels from the root inward,
// case-insensitively, byte by byte; a name that is a strict prefix of
// another (has fewer labels but all of them match) sorts first.
func canonicalLess(a, b string) bool {
	la := reversedLabels(dns.Fqdn(a))
	lb := reversedLabels(dns.Fqdn(b))

	n := len(la)
	if len(lb) < n {
		n = len(lb)
	}
	for i := 0; i < n; i++ {
		ca := strings.ToLower(la[i])
		cb := strings.ToLower(lb[i])
		if ca != cb {
			return ca < cb
		}
	}
	return len(la) < len(lb)
}

// wildcardName returns the "*.<parent>" owner name one would need for
// wildcard synthesis beneath parent, where parent is the name of the
// closest encloser.
func wildcardName(parent string) string {
	return "*." + dns.Fqdn(parent)
}

// isWildcard reports whether name's leftmost label is a literal "*".
func isWildcard(name string) bool {
	labels := dns.SplitDomainName(dns.Fqdn(name))
	return len(labels) > 0 && labels[0] == "*"
}
