package table

// Frame pairs a table with its decoded records. Records[i] was decoded from Table.Rows[i].
type Frame[T any] struct {
	Table   *Table
	Records []T
}

// Filter returns a new frame with the rows whose record passes keep
func (f Frame[T]) Filter(keep func(T) bool) Frame[T] {
	var idx []int
	records := make([]T, 0, len(f.Records))
	for i, rec := range f.Records {
		if keep(rec) {
			idx = append(idx, i)
			records = append(records, rec)
		}
	}
	return Frame[T]{Table: f.Table.Select(idx), Records: records}
}

// Len is the number of records
func (f Frame[T]) Len() int {
	return len(f.Records)
}
