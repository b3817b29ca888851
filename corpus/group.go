package corpus

import (
	"sort"
	"time"
)

// DayBucket holds every recording made on one calendar day.
type DayBucket struct {
	Date  time.Time
	Files []MediaFile
}

// GroupByDay buckets files by their parsed date. Files without a date are
// dropped. Buckets are sorted ascending by date and files within a bucket
// by path.
func GroupByDay(files []MediaFile) []DayBucket {
	index := make(map[time.Time]int)
	var buckets []DayBucket
	for _, f := range files {
		if !f.HasDate() {
			continue
		}
		i, ok := index[f.Date]
		if !ok {
			i = len(buckets)
			index[f.Date] = i
			buckets = append(buckets, DayBucket{Date: f.Date})
		}
		buckets[i].Files = append(buckets[i].Files, f)
	}

	for i := range buckets {
		fs := buckets[i].Files
		sort.Slice(fs, func(a, b int) bool { return fs[a].Path < fs[b].Path })
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date.Before(buckets[j].Date) })
	return buckets
}
