package request

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email      string `json:"email"`
	AccessCode string `json:"access_code"`
}

// SubmitScoreRequest is the request body for submitting a play session
type SubmitScoreRequest struct {
	UserID    string  `json:"user_id"`
	Time      float64 `json:"time"`
	Completed bool    `json:"completed"`
	Mistakes  int     `json:"mistakes,omitempty"`
}
