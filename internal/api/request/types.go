package request

// SubscribeRequest is the signup form body
type SubscribeRequest struct {
	FullName    Text `json:"fullName"`
	Email       Text `json:"email"`
	ParentGroup Flag `json:"parentGroup"`
	PlayerGroup Flag `json:"playerGroup"`
	Agree       Flag `json:"agree"`
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Code Code `json:"code"`
}

// SendUpdateRequest is the request body for broadcasting an update
type SendUpdateRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
