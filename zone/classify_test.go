package zone

import (
	"testing"

	"github.com/miekg/dns"
)

func exampleZoneLines() []string {
	return []string{
		"example.com. 3600 IN SOA ns1.example.com. hostmaster.example.com. 1 3600 600 604800 3600",
		"example.com. 3600 IN NS ns1.example.com.",
		"example.com. 3600 IN A 192.0.2.1",
		"ns1.example.com. 3600 IN A 192.0.2.53",
		"www.example.com. 3600 IN A 192.0.2.10",
		"alias.example.com. 3600 IN CNAME www.example.com.",
		"sub.example.com. 3600 IN NS ns1.sub.example.com.",
		"ns1.sub.example.com. 3600 IN A 192.0.2.100",
		"host.sub.example.com. 3600 IN A 192.0.2.77",
		"*.wild.example.com. 3600 IN A 192.0.2.200",
		"x.y.wild.example.com. 3600 IN TXT \"ent blocks wildcard\"",
	}
}

func TestFindExactMatch(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "www.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != Success {
		t.Fatalf("code = %v, want Success", ctx.Code)
	}
	if len(ctx.RRset.RRs) != 1 {
		t.Fatalf("RRs = %d, want 1", len(ctx.RRset.RRs))
	}
}

func TestFindNXDomain(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "nope.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != NXDomain {
		t.Fatalf("code = %v, want NXDomain", ctx.Code)
	}
}

func TestFindDelegation(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "host.sub.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != Delegation {
		t.Fatalf("code = %v, want Delegation", ctx.Code)
	}
	if len(ctx.NS.RRs) == 0 {
		t.Fatal("expected the sub.example.com. NS rrset on the delegation")
	}

	glue := ctx.GetAdditional([]uint16{dns.TypeA})
	if len(glue) == 0 {
		t.Error("expected in-bailiwick glue for ns1.sub.example.com., got none")
	}
}

func TestFindGlueOKDescendsBelowCut(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	// host.sub.example.com. lies below the sub.example.com. cut; per
	// FIND_GLUE_OK's contract ("do not treat exact matches at zone
	// cuts as delegations; descend below cuts"), the same query with
	// the option set must resolve the name's own data instead of
	// stopping at the delegation.
	ctx, err := Find(zd, "host.sub.example.com.", dns.TypeA, FindGlueOK)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != Success {
		t.Fatalf("code = %v, want Success", ctx.Code)
	}
	if len(ctx.RRset.RRs) != 1 {
		t.Fatalf("RRs = %d, want 1", len(ctx.RRset.RRs))
	}
}

func TestFindDSAtCutExempt(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "sub.example.com.", dns.TypeDS, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code == Delegation {
		t.Fatal("DS query at a cut should be answered from the parent side, not redirected")
	}
}

func TestFindCnameFallback(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "alias.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != Cname {
		t.Fatalf("code = %v, want Cname", ctx.Code)
	}
}

func TestFindWildcardSynthesis(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "anything.wild.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != Success {
		t.Fatalf("code = %v, want Success", ctx.Code)
	}
	if !ctx.Flags.Has(ResultWildcard) {
		t.Error("expected ResultWildcard flag set")
	}
	if ctx.Owner != "anything.wild.example.com." {
		t.Errorf("owner = %q, want the real queried name substituted in", ctx.Owner)
	}
}

func TestFindWildcardCancelledByENT(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	// x.y.wild.example.com. exists with a TXT record, so descending to
	// y.wild.example.com. (an empty non-terminal) must not fall through
	// to wildcard synthesis for that intermediate name.
	ctx, err := Find(zd, "other.y.wild.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code == Success {
		t.Fatal("wildcard should not apply beneath an empty non-terminal sibling")
	}
}

func TestFindNoWildcardOption(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "anything.wild.example.com.", dns.TypeA, NoWildcard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != NXDomain {
		t.Fatalf("code = %v, want NXDomain with NoWildcard set", ctx.Code)
	}
}

func TestFindIdempotent(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	first, err := Find(zd, "www.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Find(zd, "www.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Code != second.Code || len(first.RRset.RRs) != len(second.RRset.RRs) {
		t.Error("repeated identical Find calls produced different results")
	}
}

func TestFindEmptyNonTerminalIsNXRRset(t *testing.T) {
	zd := buildZone(t, "example.com.", SigningNone, exampleZoneLines())

	ctx, err := Find(zd, "y.wild.example.com.", dns.TypeA, FindDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Code != NXRRset {
		t.Fatalf("code = %v, want NXRRset for an empty non-terminal", ctx.Code)
	}
}
