// Package cimobj implements the CIM object model: class, instance,
// property, method, parameter, qualifier, and qualifier declaration,
// plus their name forms (spec §3, §4.B). InstanceName's constructors
// and SetKey validate keybindings; the other objects are plain
// value-ish structs mutated in place by their setters without further
// checks.
package cimobj

import "strings"

// NormalizeNamespace collapses a "/"-separated namespace path: leading
// and trailing slashes are stripped, and any run of slashes collapses to
// one, per spec §3 "leading/trailing slashes are tolerated on input and
// normalized away".
func NormalizeNamespace(ns string) string {
	parts := strings.Split(ns, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// NamespaceSegments splits a normalized namespace into its components,
// e.g. "root/cimv2" -> ["root", "cimv2"], the form the codec emits as a
// sequence of <NAMESPACE NAME="..."/> elements.
func NamespaceSegments(ns string) []string {
	normalized := NormalizeNamespace(ns)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "/")
}
