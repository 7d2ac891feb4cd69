package accounting_core

import (
	"fmt"
	"strconv"
)

// AccountCode is the hierarchical chart code: a 1-digit group, 1-digit
// class, 2-digit subclass and 2-digit detail, concatenated. The code
// length therefore fixes the level:
//
//	"1"      level 1 (group)
//	"11"     level 2 (class)
//	"1101"   level 3 (subclass)
//	"110101" level 4 (detail)
type AccountCode string

const (
	GroupLevel    = 1
	ClassLevel    = 2
	SubclassLevel = 3
	DetailLevel   = 4
)

var codeLengths = map[int]int{
	GroupLevel:    1,
	ClassLevel:    2,
	SubclassLevel: 4,
	DetailLevel:   6,
}

// Level derives the hierarchy level from the code length, 0 when the
// code is malformed.
func (c AccountCode) Level() int {
	switch len(c) {
	case 1:
		return GroupLevel
	case 2:
		return ClassLevel
	case 4:
		return SubclassLevel
	case 6:
		return DetailLevel
	}
	return 0
}

func (c AccountCode) Validate() error {
	level := c.Level()
	if level == 0 {
		return &ValidationError{Field: "code", Reason: fmt.Sprintf("code %q must be 1, 2, 4 or 6 digits", c)}
	}

	for _, r := range c {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "code", Reason: fmt.Sprintf("code %q contains a non-digit", c)}
		}
	}

	if c[0] == '0' {
		return &ValidationError{Field: "code", Reason: "group digit 0 is not assignable"}
	}

	return nil
}

// ParentCode truncates the code to the enclosing level. Group codes have
// no parent.
func (c AccountCode) ParentCode() (AccountCode, bool) {
	level := c.Level()
	if level <= GroupLevel {
		return "", false
	}

	return c[:codeLengths[level-1]], true
}

// HasPrefix reports whether c sits underneath ancestor in the coding
// hierarchy.
func (c AccountCode) HasPrefix(ancestor AccountCode) bool {
	if len(ancestor) >= len(c) {
		return false
	}
	return c[:len(ancestor)] == ancestor
}

// Child composes the code of the n-th child under this code. n starts
// at 1 and must fit the child segment width.
func (c AccountCode) Child(n int) (AccountCode, error) {
	level := c.Level()
	if level == 0 || level >= DetailLevel {
		return "", &ValidationError{Field: "code", Reason: fmt.Sprintf("code %q cannot have children", c)}
	}

	width := codeLengths[level+1] - codeLengths[level]
	max := 1
	for i := 0; i < width; i++ {
		max *= 10
	}
	if n < 1 || n >= max {
		return "", &ValidationError{Field: "code", Reason: fmt.Sprintf("sibling ordinal %d out of range under %q", n, c)}
	}

	return AccountCode(string(c) + fmt.Sprintf("%0*d", width, n)), nil
}

// Ordinal is the numeric value of the last code segment.
func (c AccountCode) Ordinal() int {
	level := c.Level()
	if level == 0 {
		return 0
	}

	start := 0
	if level > GroupLevel {
		start = codeLengths[level-1]
	}

	n, _ := strconv.Atoi(string(c[start:]))
	return n
}
