package zone

// FindNodeResult is the outcome of descending the tree for qname,
// before any type-level classification (CNAME/ANY/NXRRSET handling)
// has been applied. It is the find-node half of the split §4 draws
// between descending the tree and classifying the answer at the node
// that descent lands on.
type FindNodeResult struct {
	Match MatchKind

	// Node is the node descent terminated at: the exact match (the "*"
	// node on wildcard synthesis), the stop node on a partial match, or
	// nil on every NotFound (NXDOMAIN) result; Closest still holds the
	// encloser then.
	Node *ZoneNode

	// Closest is the closest encloser: equal to Node on a direct exact
	// match, the wildcard's parent on wildcard synthesis, otherwise the
	// last node actually reached during descent.
	Closest *ZoneNode

	Cut   cutState // zero value (cutNone) unless a DNAME or zone cut was recorded on the path and descent stopped short of qname
	Chain []*ZoneNode // full search path, apex first, for NSEC witness selection

	Wildcard     *ZoneNode // the "*" node synthesis used, if any
	OrigQName    string    // the name actually queried, for wildcard owner substitution
}

// findNode walks name's relative labels from the zone apex down,
// honoring zone cuts and DNAME redirection and, on a miss, wildcard
// synthesis, exactly as described in §4.3. It is grounded on
// queryresponder.go's QueryResponder, whose leading numbered comment
// block describes precisely this ladder today as sequential
// imperative checks against a flat owner map.
func findNode(zd *ZoneData, qname string, opts FindOptions) (FindNodeResult, error) {
	labels, err := relativeLabels(qname, zd.origin)
	if err != nil {
		return FindNodeResult{}, err
	}

	tr := &cutTracker{glueOK: opts.has(FindGlueOK)}
	cur := zd.root
	chain := []*ZoneNode{cur}

	if len(labels) == 0 {
		// qname is the apex itself: an exact match (§4.3 step 2). Its
		// own cut/DNAME status, if any, is judged directly off its
		// flags by the classifier, not here.
		if cur.isEmptyNonTerminal() {
			return FindNodeResult{
				Match: PartialMatch, Node: cur, Closest: cur,
				Chain: chain, OrigQName: qname,
			}, nil
		}
		return FindNodeResult{Match: ExactMatch, Node: cur, Closest: cur, Chain: chain, OrigQName: qname}, nil
	}

	for i, label := range labels {
		isApex := cur == zd.root
		if !tr.visit(cur, isApex) {
			return FindNodeResult{
				Match: PartialMatch, Node: cur, Closest: cur,
				Cut: tr.stopResult(), Chain: chain, OrigQName: qname,
			}, nil
		}

		next, ok := cur.child(label)
		if !ok {
			// §4.3 step 3: a DNAME or zone cut recorded anywhere on
			// the path outranks wildcard synthesis or NXDOMAIN (rules
			// (a)/(b) before (d)/(e)).
			if cs := tr.stopResult(); cs.kind != cutNone {
				return FindNodeResult{
					Match: PartialMatch, Node: cur, Closest: cur,
					Cut: cs, Chain: chain, OrigQName: qname,
				}, nil
			}
			if opts.has(NoWildcard) {
				return FindNodeResult{
					Match: NotFound, Node: nil, Closest: cur,
					Chain: chain, OrigQName: qname,
				}, nil
			}
			if wc, ok := cur.child("*"); ok && cur.flags.has(flagWildcardParent) {
				// (d) wildcard cancellation: per §4.3(d)(i), if the
				// relation between the full query name and this
				// closest encloser is anything other than a genuine
				// subdomain relation, the wildcard does not apply.
				// In ordinary child-map descent this case cannot
				// actually be reached (reaching cur at all already
				// proves qname is a subdomain of cur), but the check
				// is kept for fidelity and defends against a future
				// non-tree-shaped caller of findNode; see DESIGN.md.
				rel, _ := compareNames(qname, cur.name)
				if rel != RelationSubdomain && rel != RelationEqual {
					return FindNodeResult{
						Match: NotFound, Node: nil, Closest: cur,
						Chain: chain, OrigQName: qname,
					}, nil
				}
				return FindNodeResult{
					Match: ExactMatch, Node: wc, Closest: cur,
					Chain: append(chain, wc), Wildcard: wc, OrigQName: qname,
				}, nil
			}
			// (e) no wildcard: NXDOMAIN.
			return FindNodeResult{
				Match: NotFound, Node: nil, Closest: cur,
				Chain: chain, OrigQName: qname,
			}, nil
		}

		cur = next
		chain = append(chain, cur)

		if i == len(labels)-1 {
			// Landed exactly on qname (§4.3 step 2): whether it
			// delegates or redirects is judged directly off its own
			// flags by the classifier, never by what was recorded
			// walking through its ancestors.
			if cur.isEmptyNonTerminal() {
				return FindNodeResult{
					Match: PartialMatch, Node: cur, Closest: cur,
					Chain: chain, OrigQName: qname,
				}, nil
			}
			return FindNodeResult{Match: ExactMatch, Node: cur, Closest: cur, Chain: chain, OrigQName: qname}, nil
		}
	}

	return FindNodeResult{Match: ExactMatch, Node: cur, Closest: cur, Chain: chain, OrigQName: qname}, nil
}

// closestEncloser returns res's closest encloser: Closest when set
// (the wildcard's parent on synthesis), otherwise the deepest node in
// the search path. Find copies it into Context for callers that select
// an NSEC proof.
func (r FindNodeResult) closestEncloser() *ZoneNode {
	if r.Closest != nil {
		return r.Closest
	}
	if len(r.Chain) > 0 {
		return r.Chain[len(r.Chain)-1]
	}
	return nil
}
