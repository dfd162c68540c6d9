package mixed

import "sort"

// ValueCount is the number of occurrences of one distinct present value.
type ValueCount struct {
	Value string
	Count int
}

// Counts tallies the present categories, most frequent first; ties are
// ordered by value.
func Counts(cats []Category) []ValueCount {
	m := make(map[string]int)
	for _, c := range cats {
		if c.Valid {
			m[c.Value]++
		}
	}
	return sortCounts(m)
}

// NumericCounts tallies present numeric entries by their rendered form.
func NumericCounts(nums []Number) []ValueCount {
	m := make(map[string]int)
	for _, n := range nums {
		if n.Valid {
			m[n.String()]++
		}
	}
	return sortCounts(m)
}

func sortCounts(m map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(m))
	for k, v := range m {
		out = append(out, ValueCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}
