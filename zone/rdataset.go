package zone

import "github.com/miekg/dns"

// RdataSet is one RRset (plus its covering RRSIGs, if the zone is
// signed) held at a single owner name.
type RdataSet struct {
	Type   uint16
	RRs    []dns.RR
	RRSIGs []dns.RR
}

// rdataSetNode is one link in a node's per-type rdata list.
type rdataSetNode struct {
	set  RdataSet
	next *rdataSetNode
}

// rdataStore is the singly linked list of RdataSets hanging off a
// ZoneNode, mirroring the teacher's RRTypeStore but without the
// concurrent-map locking that store uses for its load-and-mutate
// lifecycle: a ZoneNode's rdata is fixed for the life of the ZoneData
// it belongs to, so plain unsynchronized links are sufficient.
type rdataStore struct {
	head  *rdataSetNode
	count int
}

// get returns the RdataSet for qtype, if present.
func (s *rdataStore) get(qtype uint16) (RdataSet, bool) {
	for n := s.head; n != nil; n = n.next {
		if n.set.Type == qtype {
			return n.set, true
		}
	}
	return RdataSet{}, false
}

// set installs or replaces the RdataSet for its own Type.
func (s *rdataStore) set(rs RdataSet) {
	for n := s.head; n != nil; n = n.next {
		if n.set.Type == rs.Type {
			n.set = rs
			return
		}
	}
	s.head = &rdataSetNode{set: rs, next: s.head}
	s.count++
}

// len reports how many distinct RR types are stored.
func (s *rdataStore) len() int {
	return s.count
}

// types returns the set of RR types present, in no particular order.
func (s *rdataStore) types() []uint16 {
	out := make([]uint16, 0, s.count)
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.set.Type)
	}
	return out
}

// all returns every RdataSet stored at the node, in no particular order.
func (s *rdataStore) all() []RdataSet {
	out := make([]RdataSet, 0, s.count)
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.set)
	}
	return out
}
