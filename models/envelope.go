package models

// Response is the uniform envelope produced by every gateway operation
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// MessageResponse is the body of a successful write or delete
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ResultResponse is the body of a successful read
type ResultResponse struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}

// AuthResponse is the body of a successful authentication
type AuthResponse struct {
	Message string `json:"message"`
	Admin   *Admin `json:"admin"`
	Token   string `json:"token,omitempty"`
}

// UploadResponse is the body of a successful image upload
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadErrorResponse is the body of a failed image upload
type UploadErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
