package model

// Notification 站内通知
type Notification struct {
	Id        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsRead    bool   `json:"is_read"`
	ProjectId int64  `json:"related_project,omitempty"`
	CreatedAt string `json:"created_at"`
}
