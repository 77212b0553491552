// Package sortutil implements the generic comparator-driven sorts spec.md
// §4.5 names: a bubble sort and a randomised-pivot quicksort. riff uses
// Quicksort to order wavl segment descriptors by relative offset.
package sortutil

import "github.com/mycophonic/spectra/internal/numeric"

// bubbleThreshold is the item count above which Quicksort's recursion
// depth risk is "real" per spec.md §4.5, at which point it falls back to
// Bubble rather than risk unbounded stack growth on an adversarial or
// already-sorted input driving worst-case partition behaviour.
const bubbleThreshold = 1 << 16

// Bubble sorts items in place using less as the strict less-than
// comparator.
func Bubble[T any](items []T, less func(a, b T) bool) {
	n := len(items)

	for i := 0; i < n-1; i++ {
		swapped := false

		for j := 0; j < n-1-i; j++ {
			if less(items[j+1], items[j]) {
				items[j], items[j+1] = items[j+1], items[j]
				swapped = true
			}
		}

		if !swapped {
			return
		}
	}
}

// Quicksort sorts items in place using less as the strict less-than
// comparator and rng to pick partition pivots. It falls back to Bubble
// once the remaining partition is large enough that recursion depth risk
// is real, per spec.md §4.5.
func Quicksort[T any](items []T, less func(a, b T) bool, rng *numeric.Rand) {
	if len(items) > bubbleThreshold {
		Bubble(items, less)

		return
	}

	quicksort(items, 0, len(items)-1, less, rng)
}

func quicksort[T any](items []T, low, high int, less func(a, b T) bool, rng *numeric.Rand) {
	for low < high {
		if high-low+1 > bubbleThreshold {
			Bubble(items[low:high+1], less)

			return
		}

		p := partition(items, low, high, less, rng)

		// Recurse into the smaller side and loop on the larger one, bounding
		// stack depth to O(log n) even without a fallback.
		if p-low < high-p {
			quicksort(items, low, p-1, less, rng)
			low = p + 1
		} else {
			quicksort(items, p+1, high, less, rng)
			high = p - 1
		}
	}
}

// partition picks a random pivot in [low, high], swaps it to high, then
// performs a standard Lomuto partition.
func partition[T any](items []T, low, high int, less func(a, b T) bool, rng *numeric.Rand) int {
	pivotIndex := low + rng.IntN(high-low+1)
	items[pivotIndex], items[high] = items[high], items[pivotIndex]

	pivot := items[high]
	store := low

	for i := low; i < high; i++ {
		if less(items[i], pivot) {
			items[i], items[store] = items[store], items[i]
			store++
		}
	}

	items[store], items[high] = items[high], items[store]

	return store
}
