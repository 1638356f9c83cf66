package email

type VerificationEmailData struct {
	Email      string
	VerifyLink string
	ExpiresIn  string
}

type ResetPasswordData struct {
	Email     string
	Token     string
	ExpiresIn string
}

// StatusChangedData is the payload for moderation notification emails:
// sent to the author when an admin publishes or rejects a post, and to the
// admin address when an author submits one for review.
type StatusChangedData struct {
	Email     string
	PostTitle string
	NewStatus string
	Reason    string // set only on rejection
}

type EmailRequest struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}
