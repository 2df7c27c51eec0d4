package eve

import "sort"

// DistinctDates returns the sorted set of known DateOnly values.
// DistinctDates 返回已知 DateOnly 值的有序集合。
func DistinctDates(alerts []Alert) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, a := range alerts {
		if a.DateOnly == UnknownDate || a.DateOnly == "" {
			continue
		}
		if _, ok := seen[a.DateOnly]; ok {
			continue
		}
		seen[a.DateOnly] = struct{}{}
		dates = append(dates, a.DateOnly)
	}
	sort.Strings(dates)
	return dates
}
