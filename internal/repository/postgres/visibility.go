package postgres

import "fmt"

// visibleCond is the single predicate deciding whether a post is publicly
// visible: the post is published, its category is published, and its publish
// date is not in the future. Every listing and fallback lookup composes this
// exact condition so the rule cannot drift between views. argPos is the
// positional index of the asOf parameter in the enclosing query.
func visibleCond(argPos int) string {
	return fmt.Sprintf("p.is_published AND c.is_published AND p.pub_date <= $%d", argPos)
}
