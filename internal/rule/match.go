package rule

import "tagmark/internal/tree"

// Match returns the first rule in the chain starting at head whose
// context is either absent or satisfied by ctx.MatchContext, or nil.
func Match(head *Rule, ctx tree.ContextMatcher) *Rule {
	for r := head; r != nil; r = r.next {
		if !r.HasContext() {
			return r
		}
		if ctx.MatchContext(r.context) {
			return r
		}
	}
	return nil
}
