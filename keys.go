package depot

import "strings"

// Separator joins a namespace prefix with the keys stored below it.
const Separator = "::"

// JoinKey prefixes key with the given namespace.
func JoinKey(prefix, key string) string {
	return prefix + Separator + key
}

// TrimKey strips the namespace prefix from a raw backend key.
// The boolean reports whether raw actually belongs to the namespace.
func TrimKey(raw, prefix string) (string, bool) {
	return strings.CutPrefix(raw, prefix+Separator)
}
