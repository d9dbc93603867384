// Package policy applies allow/block rules to installation candidates.
package policy

// Policy holds allow-list and block-list rules over candidate identifiers.
// An empty allow list means "everything is allowed"; the block list is
// evaluated first, so an identifier present in both is rejected.
type Policy struct {
	Allow []string `yaml:"allow" toml:"allow"`
	Block []string `yaml:"block" toml:"block"`
}

// Verdict is the outcome of checking one identifier against a policy.
type Verdict int

const (
	// VerdictAccept means the candidate may be installed.
	VerdictAccept Verdict = iota
	// VerdictBlocked means the block list rejected the candidate. Callers
	// record these as skipped.
	VerdictBlocked
	// VerdictNotAllowed means an allow list is present and does not contain
	// the candidate. Callers drop these silently.
	VerdictNotAllowed
)

// Check evaluates a single identifier. Block wins over allow.
func (p Policy) Check(id string) Verdict {
	for _, b := range p.Block {
		if b == id {
			return VerdictBlocked
		}
	}
	if len(p.Allow) == 0 {
		return VerdictAccept
	}
	for _, a := range p.Allow {
		if a == id {
			return VerdictAccept
		}
	}
	return VerdictNotAllowed
}

// Subject is anything a policy can be applied to.
type Subject interface {
	Identifier() string
}

// Rejection records why a candidate was filtered out.
type Rejection struct {
	ID      string
	Verdict Verdict
}

// Reason returns a human-readable rejection reason.
func (r Rejection) Reason() string {
	switch r.Verdict {
	case VerdictBlocked:
		return "blocked by policy"
	case VerdictNotAllowed:
		return "not in allow list"
	default:
		return ""
	}
}

// Filter partitions candidates into accepted and rejected. Accepted
// preserves input order. The filter itself performs no logging and no side
// effects; acting on rejections is the caller's business.
func Filter[T Subject](candidates []T, p Policy) ([]T, []Rejection) {
	accepted := make([]T, 0, len(candidates))
	var rejected []Rejection

	for _, c := range candidates {
		verdict := p.Check(c.Identifier())
		if verdict == VerdictAccept {
			accepted = append(accepted, c)
			continue
		}
		rejected = append(rejected, Rejection{ID: c.Identifier(), Verdict: verdict})
	}

	return accepted, rejected
}
