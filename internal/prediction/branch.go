package prediction

import "strings"

// Branch is the closed set of academic branches the scorers know about.
type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchIT    Branch = "IT"
	BranchECE   Branch = "ECE"
	BranchEEE   Branch = "EEE"
	BranchMECH  Branch = "MECH"
	BranchCIVIL Branch = "CIVIL"
	BranchOther Branch = "OTHER"
)

var exactBranches = map[string]Branch{
	"computer science engineering":              BranchCSE,
	"computer science":                          BranchCSE,
	"cse":                                       BranchCSE,
	"information technology":                    BranchIT,
	"it":                                        BranchIT,
	"electronics and communication engineering": BranchECE,
	"electronics":                               BranchECE,
	"ece":                                       BranchECE,
	"electrical engineering":                    BranchEEE,
	"electrical and electronics engineering":    BranchEEE,
	"eee":                                       BranchEEE,
	"mechanical engineering":                    BranchMECH,
	"mechanical":                                BranchMECH,
	"mech":                                      BranchMECH,
	"civil engineering":                         BranchCIVIL,
	"civil":                                     BranchCIVIL,
}

// Checked in order, so "electronics" wins over "electrical" for ECE names.
var fuzzyBranches = []struct {
	keyword string
	branch  Branch
}{
	{"computer", BranchCSE},
	{"software", BranchCSE},
	{"information", BranchIT},
	{"communication", BranchECE},
	{"electronic", BranchECE},
	{"electrical", BranchEEE},
	{"mechanical", BranchMECH},
	{"civil", BranchCIVIL},
}

// ResolveBranch maps free text onto the closed branch set. The boolean is
// false when nothing matched, in which case BranchOther is returned.
func ResolveBranch(text string) (Branch, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if key == "" {
		return BranchOther, false
	}
	if b, ok := exactBranches[key]; ok {
		return b, true
	}
	for _, f := range fuzzyBranches {
		if strings.Contains(key, f.keyword) {
			return f.branch, true
		}
	}
	return BranchOther, false
}

// NormalizeBranch returns the key used to match a profile against dataset
// rows: the resolved branch code, or the upper-cased text for branches
// outside the closed set.
func NormalizeBranch(text string) string {
	if b, ok := ResolveBranch(text); ok {
		return string(b)
	}
	return strings.ToUpper(strings.TrimSpace(text))
}

// IsCSBranch reports whether the branch is computer science or IT.
func IsCSBranch(text string) bool {
	b, ok := ResolveBranch(text)
	return ok && (b == BranchCSE || b == BranchIT)
}
