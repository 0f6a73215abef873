package common

import "strings"

// SplitPrefixed splits a markup name into its namespace prefix and
// local part. Names without a colon return an empty prefix.
func SplitPrefixed(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}

	return "", name
}

// SplitDotted splits an owner-qualified member name such as
// "Style.Triggers" into its owner and member parts. The third result is
// false for plain names. Only the first dot splits, so nested owners
// stay with the member.
func SplitDotted(name string) (owner, member string, ok bool) {
	i := strings.IndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", name, false
	}

	return name[:i], name[i+1:], true
}

// JoinDotted renders an owner-qualified member name. An empty owner
// yields the plain member name.
func JoinDotted(owner, member string) string {
	if owner == "" {
		return member
	}

	return owner + "." + member
}
