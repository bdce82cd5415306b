package httpdto

// UploadURLRequest is used for POST /media/upload-url. FileName is the
// client-chosen storage key, not the display name.
type UploadURLRequest struct {
	FileName         string `json:"fileName" binding:"required"`
	MimeType         string `json:"mimeType" binding:"required"`
	OriginalFilename string `json:"originalFilename"`
}

// UploadURLResponse carries the presigned write URL.
type UploadURLResponse struct {
	URL string `json:"url"`
}

// NotifyUploadRequest is used for POST /media/notify-upload, after the client
// has PUT the bytes to the presigned URL.
type NotifyUploadRequest struct {
	FileName         string `json:"fileName" binding:"required"`
	MimeType         string `json:"mimeType" binding:"required"`
	OriginalFilename string `json:"originalFilename"`
}

// ToggleLikeRequest is used for POST /media/:id/toggle-like
type ToggleLikeRequest struct {
	Action string `json:"action" binding:"required,oneof=like unlike"`
}
