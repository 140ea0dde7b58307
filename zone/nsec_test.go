package zone

import (
	"testing"

	"github.com/miekg/dns"
)

func TestGetNSECWitness(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNSEC, exampleZoneLines())

	rr, err := getNSECWitness(zd, "nope.example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nsec, ok := rr.(*dns.NSEC)
	if !ok {
		t.Fatalf("rr = %T, want *dns.NSEC", rr)
	}
	if nsec.Hdr.Name == "" || nsec.NextDomain == "" {
		t.Error("NSEC record missing owner or next-domain field")
	}
}

func TestGetNSECWitnessSkipsEmptyNonTerminalPredecessors(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNSEC, exampleZoneLines())

	// a.y.wild.example.com. does not exist, and its plain canonical
	// predecessor is y.wild.example.com., an empty non-terminal implied
	// by x.y.wild.example.com. An ENT owns no NSEC record, so the
	// witness must walk back one more step to *.wild.example.com.
	// (which sorts between wild.example.com. and y.wild.example.com.),
	// the nearest name that actually owns one.
	rr, err := getNSECWitness(zd, "a.y.wild.example.com.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nsec, ok := rr.(*dns.NSEC)
	if !ok {
		t.Fatalf("rr = %T, want *dns.NSEC", rr)
	}
	if nsec.Hdr.Name != "*.wild.example.com." {
		t.Errorf("witness owner = %q, want %q", nsec.Hdr.Name, "*.wild.example.com.")
	}
}

func TestGetNSECForNXRRSET(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNSEC, exampleZoneLines())

	node, ok := zd.nodeByName("www.example.com.")
	if !ok {
		t.Fatal("www.example.com. not found in test zone")
	}
	rr, err := getNSECForNXRRSET(zd, node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nsec := rr.(*dns.NSEC)
	found := false
	for _, t2 := range nsec.TypeBitMap {
		if t2 == dns.TypeA {
			found = true
		}
	}
	if !found {
		t.Error("type bitmap for www.example.com. should include A")
	}
}

func TestGetNSECWitnessWrongZoneKind(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	_, err := getNSECWitness(zd, "nope.example.com.")
	if _, ok := err.(*DataSourceError); !ok {
		t.Errorf("error = %T, want *DataSourceError", err)
	}
}
