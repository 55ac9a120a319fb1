package analytics

import "stunting/domain"

// Deduplicate keeps, for every NIK, only the examination with the latest
// created_at. Records without a NIK are kept as they are. When two records of
// the same NIK share a timestamp the later one in the input wins. The relative
// order of the retained records is preserved.
func Deduplicate(records []domain.ChildRecord) []domain.ChildRecord {
	latest := make(map[string]int, len(records))
	for i := range records {
		if !records[i].HasNIK() {
			continue
		}
		nik := *records[i].NIK
		best, ok := latest[nik]
		if !ok || !records[i].CreatedAt.Before(records[best].CreatedAt) {
			latest[nik] = i
		}
	}

	out := make([]domain.ChildRecord, 0, len(records))
	for i := range records {
		if !records[i].HasNIK() || latest[*records[i].NIK] == i {
			out = append(out, records[i])
		}
	}
	return out
}
