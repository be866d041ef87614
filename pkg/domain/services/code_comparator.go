package services

import (
	"regexp"
	"strconv"
	"strings"
)

// CodeComparator orders material and supplier codes the way a buyer reads
// them: digit runs compare numerically, so "9-20" sorts before "9-100".
type CodeComparator struct {
	segmentPattern *regexp.Regexp
}

// NewCodeComparator creates a new code comparator
func NewCodeComparator() *CodeComparator {
	return &CodeComparator{
		segmentPattern: regexp.MustCompile(`\d+|\D+`),
	}
}

// CompareCodes compares two codes segment by segment
// Returns: -1 if code1 < code2, 0 if equal, 1 if code1 > code2
func (cc *CodeComparator) CompareCodes(code1, code2 string) int {
	if code1 == code2 {
		return 0
	}

	seg1 := cc.segmentPattern.FindAllString(strings.ToUpper(code1), -1)
	seg2 := cc.segmentPattern.FindAllString(strings.ToUpper(code2), -1)

	for i := 0; i < len(seg1) && i < len(seg2); i++ {
		if c := compareSegments(seg1[i], seg2[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(seg1) < len(seg2):
		return -1
	case len(seg1) > len(seg2):
		return 1
	}
	return strings.Compare(code1, code2)
}

// compareSegments compares numerically when both segments are digit runs
func compareSegments(a, b string) int {
	n1, err1 := strconv.ParseUint(a, 10, 64)
	n2, err2 := strconv.ParseUint(b, 10, 64)
	if err1 != nil || err2 != nil {
		return strings.Compare(a, b)
	}
	if n1 < n2 {
		return -1
	} else if n1 > n2 {
		return 1
	}
	// "007" and "7": fewer leading zeros first
	return strings.Compare(b, a)
}
