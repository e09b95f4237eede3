package domain

import "strings"

// keywordRule maps message substrings onto a ChangeType.
type keywordRule struct {
	keywords []string
	typ      ChangeType
}

// classificationRules are evaluated top to bottom; the first hit wins, so a
// message like "fix: add missing guard" is a feat.
var classificationRules = []keywordRule{
	{keywords: []string{"feat", "add"}, typ: TypeFeat},
	{keywords: []string{"fix", "bug"}, typ: TypeFix},
	{keywords: []string{"refactor"}, typ: TypeRefactor},
	{keywords: []string{"docs"}, typ: TypeDocs},
	{keywords: []string{"style", "design"}, typ: TypeStyle},
	{keywords: []string{"chore"}, typ: TypeChore},
}

// Classify maps a raw commit message onto a ChangeType using
// case-insensitive substring matching. Messages that match nothing are
// chores. Classify never fails.
func Classify(message string) ChangeType {
	lower := strings.ToLower(message)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.typ
			}
		}
	}
	return TypeChore
}
