package contact

// ContactResponse is returned when both emails were delivered, and when
// delivery failed.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists every violated form rule.
type ValidationErrorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// Fixed texts shown to the submitter.
const (
	MessageSent       = "Your message has been sent successfully! We'll get back to you within 24 hours."
	MessageSendFailed = "Sorry, there was an error sending your message. Please try again or contact us directly."
	MessageRateLimit  = "Too many requests from this IP, please try again later."
	ErrInvalidBody    = "Invalid request body"
)
