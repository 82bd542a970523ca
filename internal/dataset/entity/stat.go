package entity

// ColumnStat holds the descriptive statistics of one column's numeric sample.
type ColumnStat struct {
	Mean   float64
	Median float64
}
