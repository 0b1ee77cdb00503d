package utils

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Map returns the result of applying f to every item of input, in order
func Map[T any, U any](input []T, f func(T) U) []U {
	output := make([]U, 0, len(input))
	for _, item := range input {
		output = append(output, f(item))
	}
	return output
}

// Iota returns the sequence gen(0), gen(1), ..., gen(n-1)
func Iota[T any](n int, gen func(int) T) []T {
	output := make([]T, n)
	for i := range output {
		output[i] = gen(i)
	}
	return output
}

// Indices returns 0, 1, ..., n-1
func Indices(n int) []int {
	return Iota(n, func(i int) int { return i })
}

// GenMap indexes items by the key computed for each one. Later items win on duplicate keys
func GenMap[T any, Key comparable](input []T, key func(T) Key) map[Key]T {
	output := make(map[Key]T, len(input))
	for _, item := range input {
		output[key(item)] = item
	}
	return output
}

// Accumulate adds up value(item) for every item
func Accumulate[T any, U constraints.Integer | constraints.Float](input []T, value func(T) U) U {
	var total U
	for _, item := range input {
		total += value(item)
	}
	return total
}

// FormatSlice formats every item with fmt.Sprint and joins them with separator
func FormatSlice[T any](input []T, separator string) string {
	return strings.Join(Map(input, func(item T) string { return fmt.Sprint(item) }), separator)
}
