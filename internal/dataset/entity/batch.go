package entity

// Batch records one accepted upload.
type Batch struct {
	ID         int64
	Filename   string
	Rows       int
	UploadedAt int64
}
