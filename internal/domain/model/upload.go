package model

// FileUpload carries one raw uploaded file on its way to the document
// collaborator. Bytes never reach the order store.
type FileUpload struct {
	Filename string
	Data     []byte
}

// MergedArtifact references the stored merged document.
type MergedArtifact struct {
	Ref      string
	ByteSize int64
}
