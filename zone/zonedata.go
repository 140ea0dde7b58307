package zone

import (
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/miekg/dns"
	"github.com/twotwotwo/sorts"
)

// ZoneData is a single authoritative zone. It is built by a loader
// through Insert, SetRdata, MarkCut, SetNSEC3Params and InsertNSEC3,
// then sealed with Finalize; the lookups in this package only read it
// and never load, transfer, or mutate one.
type ZoneData struct {
	origin  string
	root    *ZoneNode
	signing SigningMode
	nsec3   *NSEC3Data

	// order/index give a flat, canonically sorted view of every owner
	// name in the zone, built once at Finalize time, mirroring the
	// teacher's Owners/OwnerIndex SliceZone pattern. This is what makes
	// predecessor/successor/"largest name in zone" navigation for NSEC
	// witness selection O(log n) instead of a tree walk.
	order []*ZoneNode
	index map[string]int

	finalized bool
}

// NSEC3Data holds the NSEC3 parameters and hash-ordered namespace for
// a zone signed with NSEC3, a namespace wholly distinct from the
// hierarchical zone tree above (see §9 GLOSSARY: the ordering NSEC3
// proofs rely on is over hashed owner names, not the zone's own name
// hierarchy).
type NSEC3Data struct {
	Algorithm  uint8
	Iterations uint16
	Salt       string
	OptOut     bool

	subtree cmap.ConcurrentMap[string, *nsec3Node]
	order   []string // sorted hash labels, built at Finalize time
}

type nsec3Node struct {
	hashLabel string
	owner     string // original owner name this hash covers
	rrs       RdataSet
}

// NewZoneData creates an empty zone rooted at origin.
func NewZoneData(origin string, signing SigningMode) *ZoneData {
	origin = dns.Fqdn(origin)
	zd := &ZoneData{
		origin:  origin,
		root:    newZoneNode(origin, "", nil),
		signing: signing,
	}
	if signing == SigningNSEC3 {
		zd.nsec3 = &NSEC3Data{
			subtree: cmap.New[*nsec3Node](),
		}
	}
	return zd
}

// Origin returns the zone's apex name.
func (zd *ZoneData) Origin() string {
	return zd.origin
}

// Signing reports how (or whether) the zone is DNSSEC-signed.
func (zd *ZoneData) Signing() SigningMode {
	return zd.signing
}

// Insert creates (if necessary) and returns the node for name,
// creating any empty non-terminal ancestors along the way. name must
// be contained in the zone.
func (zd *ZoneData) Insert(name string) (*ZoneNode, error) {
	assertInvariant(!zd.finalized, "Insert called after Finalize")

	labels, err := relativeLabels(name, zd.origin)
	if err != nil {
		return nil, err
	}

	cur := zd.root
	fqdn := zd.origin
	for _, label := range labels {
		fqdn = label + "." + fqdn
		cur = cur.ensureChild(label, fqdn)
	}
	return cur, nil
}

// SetRdata installs an RdataSet at name, inserting the node if needed.
func (zd *ZoneData) SetRdata(name string, rs RdataSet) error {
	n, err := zd.Insert(name)
	if err != nil {
		return err
	}
	n.rdata.set(rs)
	if rs.Type == dns.TypeNS && n != zd.root {
		n.flags |= flagCallback
	}
	if rs.Type == dns.TypeDNAME {
		n.flags |= flagCallback
	}
	if n.label == "*" {
		if n.parent != nil {
			n.parent.flags |= flagWildcardParent
		}
	}
	return nil
}

// MarkCut force-marks name as a zone-cut/DNAME callback node
// regardless of what rdata it carries; used by loaders that detect
// cuts by other means than a literal NS/DNAME RRset at the node.
func (zd *ZoneData) MarkCut(name string) error {
	n, err := zd.Insert(name)
	if err != nil {
		return err
	}
	n.flags |= flagCallback
	return nil
}

// Finalize builds the flat canonical order used for predecessor and
// successor navigation. It must be called once, after all data has
// been loaded, and before any Find/FindNSEC3 call. The traversal is a
// parent-before-children, sorted-sibling depth-first walk, which
// produces exactly RFC 4034 §6.1 canonical order without a separate
// full sort (see DESIGN.md).
func (zd *ZoneData) Finalize() {
	if zd.finalized {
		return
	}
	zd.order = nil
	var walk func(n *ZoneNode)
	walk = func(n *ZoneNode) {
		zd.order = append(zd.order, n)
		for _, label := range n.order {
			walk(n.children[label])
		}
	}
	walk(zd.root)

	zd.index = make(map[string]int, len(zd.order))
	for i, n := range zd.order {
		zd.index[strings.ToLower(n.name)] = i
	}

	if zd.nsec3 != nil {
		keys := zd.nsec3.subtree.Keys()
		sorts.Quicksort(labelList(keys))
		zd.nsec3.order = keys
	}

	zd.finalized = true
}

// previousNode returns the node immediately preceding name in
// canonical order, i.e. the NSEC owner whose "next" pointer would
// cover name. Falling off the start of the zone always wraps around to
// the last node, since the zone is a ring for NSEC purposes.
func (zd *ZoneData) previousNode(name string) (*ZoneNode, bool) {
	assertInvariant(zd.finalized, "previousNode called before Finalize")

	name = strings.ToLower(dns.Fqdn(name))
	// Binary search for the first order entry >= name.
	lo, hi := 0, len(zd.order)
	for lo < hi {
		mid := (lo + hi) / 2
		if canonicalLess(zd.order[mid].name, name) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	idx := lo - 1
	if idx < 0 {
		if len(zd.order) == 0 {
			return nil, false
		}
		return zd.order[len(zd.order)-1], true
	}
	return zd.order[idx], true
}

// successor returns the node immediately following n in canonical
// order, wrapping around to the zone apex if n is the last node.
func (zd *ZoneData) successor(n *ZoneNode) *ZoneNode {
	assertInvariant(zd.finalized, "successor called before Finalize")
	idx, ok := zd.index[strings.ToLower(n.name)]
	assertInvariant(ok, "successor called with node %q not in zone order", n.name)
	if idx+1 >= len(zd.order) {
		return zd.order[0]
	}
	return zd.order[idx+1]
}

// nodeByName returns the exact node for name, if it exists.
func (zd *ZoneData) nodeByName(name string) (*ZoneNode, bool) {
	idx, ok := zd.index[strings.ToLower(dns.Fqdn(name))]
	if !ok {
		return nil, false
	}
	return zd.order[idx], true
}

// insertNSEC3 adds a hash-ordered entry to the NSEC3 namespace. owner
// is the original (unhashed) name the record covers.
func (zd *ZoneData) insertNSEC3(hashLabel, owner string, rs RdataSet) error {
	if zd.nsec3 == nil {
		return &DataSourceError{Zone: zd.origin, Msg: "insertNSEC3 called on a zone that is not NSEC3-signed"}
	}
	assertInvariant(!zd.finalized, "insertNSEC3 called after Finalize")
	hashLabel = strings.ToLower(hashLabel)
	zd.nsec3.subtree.Set(hashLabel, &nsec3Node{hashLabel: hashLabel, owner: owner, rrs: rs})
	return nil
}

// SetNSEC3Params records the hash parameters a loader read from the
// zone's own NSEC3PARAM record (or, for a demo fixture, from a
// sidecar policy file). It must be called before any InsertNSEC3 call
// and before Finalize.
func (zd *ZoneData) SetNSEC3Params(algorithm uint8, iterations uint16, salt string, optOut bool) error {
	if zd.nsec3 == nil {
		return &DataSourceError{Zone: zd.origin, Msg: "SetNSEC3Params called on a zone that is not NSEC3-signed"}
	}
	zd.nsec3.Algorithm = algorithm
	zd.nsec3.Iterations = iterations
	zd.nsec3.Salt = salt
	zd.nsec3.OptOut = optOut
	return nil
}

// InsertNSEC3 adds a loader-hashed owner name to the NSEC3 namespace,
// the exported counterpart to insertNSEC3 for callers outside this
// package (e.g. a zone-file loader that has already computed
// dns.HashName for every owner it read).
func (zd *ZoneData) InsertNSEC3(hashedOwner, unhashedOwner string, rs RdataSet) error {
	return zd.insertNSEC3(hashedOwner, unhashedOwner, rs)
}
