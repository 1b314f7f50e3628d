package domain

type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "INFO"
	NotificationSeveritySuccess NotificationSeverity = "SUCCESS"
	NotificationSeverityWarning NotificationSeverity = "WARNING"
)

type Notification struct {
	ID          int64                `json:"id"`
	RecipientID string               `json:"recipient_id"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	Severity    NotificationSeverity `json:"severity"`
	IsRead      bool                 `json:"is_read"`
	Attributes  map[string]string    `json:"attributes,omitempty"`
	CreatedOn   string               `json:"created_on"`
}
