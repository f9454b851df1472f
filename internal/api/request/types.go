package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for starting a game session.
// Mode is "classic" or "daily"; GridSize only applies to classic games.
type CreateSessionRequest struct {
	Mode     string `json:"mode"`
	GridSize int    `json:"grid_size,omitempty"`
}

// SubmitWordRequest is the request body for scoring a word. Cells are
// listed in reading order of the word being claimed.
type SubmitWordRequest struct {
	Cells []string `json:"cells"`
}
