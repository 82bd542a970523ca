package entity

// Row is one CSV record keyed by header column name. Values are the cell text
// exactly as read; columns missing from a short record are absent.
//
// Rows are immutable once appended to the store.
type Row map[string]string

// Value returns the cell for column and whether the row has that column.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}
