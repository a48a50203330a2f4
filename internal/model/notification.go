package model

import "time"

// NotificationType describes which event produced a notification.
type NotificationType string

const (
	NotificationApproval    NotificationType = "approval"
	NotificationRejection   NotificationType = "rejection"
	NotificationNewDocument NotificationType = "new_document"
	NotificationComment     NotificationType = "comment"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationApproval, NotificationRejection, NotificationNewDocument, NotificationComment:
		return true
	}
	return false
}

// ReviewerAudience is the shared recipient id for events every reviewer should see.
const ReviewerAudience = "reviewers"

// Notification is a recipient-addressed event record.
type Notification struct {
	ID            string           `json:"id"`
	RecipientID   string           `json:"recipientId"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	DocumentID    string           `json:"documentId,omitempty"`
	DocumentTitle string           `json:"documentTitle,omitempty"`
	Read          bool             `json:"read"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// DocumentRef is the optional back-reference a notification carries.
type DocumentRef struct {
	ID    string
	Title string
}
