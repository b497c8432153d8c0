package handler

// === Requests ===

type CreateRequest struct {
	Label      string `json:"label"`
	TTLSeconds *int64 `json:"ttl_seconds,omitempty"`
}

// === Responses ===

type CreateResponse struct {
	Code      string `json:"code"`
	JoinURL   string `json:"join_url"`
	Label     string `json:"label"`
	ExpiresAt string `json:"expires_at"`
}

type SessionResponse struct {
	Code         string  `json:"code"`
	Label        string  `json:"label"`
	CreatedAt    string  `json:"created_at"`
	ExpiresAt    string  `json:"expires_at"`
	JoinCount    int64   `json:"join_count"`
	LastJoinedAt *string `json:"last_joined_at"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
