package zone

import (
	"testing"

	"github.com/miekg/dns"
)

// mustRR parses one literal RR string, grounded on the teacher's
// ixfr_test.go makeRRSlice helper.
func mustRR(t *testing.T, s string) dns.RR {
	t.Helper()
	rr, err := dns.NewRR(s)
	if err != nil {
		t.Fatalf("dns.NewRR(%q): %v", s, err)
	}
	return rr
}

// buildZone assembles a ZoneData from literal zone-file-style RR
// strings, grouping same-owner same-type records into one RdataSet
// the way a real loader would before finalizing the tree.
func buildZone(t *testing.T, origin string, signing SigningMode, lines []string) *ZoneData {
	t.Helper()
	zd := NewZoneData(origin, signing)

	type key struct {
		name  string
		rtype uint16
	}
	pending := map[key][]dns.RR{}
	var order []key

	for _, l := range lines {
		rr := mustRR(t, l)
		k := key{name: rr.Header().Name, rtype: rr.Header().Rrtype}
		if _, ok := pending[k]; !ok {
			order = append(order, k)
		}
		pending[k] = append(pending[k], rr)
	}

	for _, k := range order {
		if err := zd.SetRdata(k.name, RdataSet{Type: k.rtype, RRs: pending[k]}); err != nil {
			t.Fatalf("SetRdata(%q, %v): %v", k.name, k.rtype, err)
		}
	}

	zd.Finalize()
	return zd
}
