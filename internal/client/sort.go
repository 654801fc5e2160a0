package client

import "sort"

// distinctByID removes duplicate entries and sorts the remainder by ID
// ascending. Collection endpoints can return the same object more than once
// when it is reachable through several links.
func distinctByID[T any](items []T, id func(T) int64) []T {
	seen := make(map[int64]bool, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		if seen[id(item)] {
			continue
		}
		seen[id(item)] = true
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

// intersectByID keeps the items of a whose IDs also appear in b.
func intersectByID[T any](a, b []T, id func(T) int64) []T {
	inB := make(map[int64]bool, len(b))
	for _, item := range b {
		inB[id(item)] = true
	}

	var out []T
	for _, item := range a {
		if inB[id(item)] {
			out = append(out, item)
		}
	}
	return out
}
