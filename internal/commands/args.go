package commands

import "strings"

// SplitKeyword splits args at the rightmost occurrence of keyword as a
// whole token, so object names containing the keyword still parse:
// "tea from the east from Chen" splits into "tea from the east" / "Chen".
// Returns ok=false when the keyword is absent or sits at an edge with an
// empty side.
func SplitKeyword(args, keyword string) (left, right string, ok bool) {
	fields := strings.Fields(args)
	for i := len(fields) - 1; i >= 0; i-- {
		if !strings.EqualFold(fields[i], keyword) {
			continue
		}
		if i == 0 || i == len(fields)-1 {
			return "", "", false
		}
		return strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " "), true
	}
	return "", "", false
}
