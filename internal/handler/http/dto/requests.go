package dto

// LoginRequest is the login form body.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest is the registration form body.
type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required"`
	Email           string `form:"email" json:"email" binding:"required"`
	Password        string `form:"password" json:"password" binding:"required"`
	PasswordConfirm string `form:"passwordConfirm" json:"passwordConfirm" binding:"required"`
}

// CommentRequest carries comment create and edit bodies.
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ShareRequest names the user a recipe is shared with.
type ShareRequest struct {
	Username string `json:"username" binding:"required"`
}
