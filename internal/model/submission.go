package model

import "time"

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactReply is an admin reply attached to a ContactMessage.
type ContactReply struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactThread is a message together with its replies, newest first.
type ContactThread struct {
	ContactMessage
	Replies []ContactReply `json:"replies"`
}

// JobApplication is an application sent through the careers page.
type JobApplication struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Position    *string   `json:"position,omitempty"`
	LinkedInURL *string   `json:"linkedin_url,omitempty"`
	CVURL       *string   `json:"cv_url,omitempty"`
	Message     *string   `json:"message,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Access log methods recorded by the auditor.
const (
	AccessMethodPassword       = "password"
	AccessMethodTwoFactor      = "2fa"
	AccessMethodAPIKey         = "api_key"
	AccessMethodContactForm    = "contact_form"
	AccessMethodContactReply   = "contact_reply"
	AccessMethodJobApplication = "job_application"
)

// AccessLogEntry is a write-once audit record.
type AccessLogEntry struct {
	ID        string    `json:"id"`
	SubjectID *string   `json:"subject_id,omitempty"`
	Email     string    `json:"email"`
	IP        *string   `json:"ip,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	Method    string    `json:"method"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// Client is a customer logo shown on the marketing site.
type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	WebsiteURL *string   `json:"website_url,omitempty"`
	LogoURL    *string   `json:"logo_url,omitempty"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StringPtr returns nil for "" and &s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns *p, or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
