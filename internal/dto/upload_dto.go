package dto

// UploadResponse carries the stored location of an uploaded file
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileKey  string `json:"fileKey"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}
