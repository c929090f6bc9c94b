package repository

import "strings"

// NameKey normalizes an exercise name for catalog lookups.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
