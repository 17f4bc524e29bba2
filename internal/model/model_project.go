package model

// ProjectStatus 项目在立项/中期/结题流程中的状态
type ProjectStatus string

const (
	ProjectDraft            ProjectStatus = "draft"
	ProjectSubmitted        ProjectStatus = "submitted"
	ProjectLevel1Reviewing  ProjectStatus = "level1_reviewing"
	ProjectLevel1Approved   ProjectStatus = "level1_approved"
	ProjectLevel1Rejected   ProjectStatus = "level1_rejected"
	ProjectLevel2Reviewing  ProjectStatus = "level2_reviewing"
	ProjectLevel2Approved   ProjectStatus = "level2_approved"
	ProjectLevel2Rejected   ProjectStatus = "level2_rejected"
	ProjectMidtermReviewing ProjectStatus = "midterm_reviewing"
	ProjectClosureReviewing ProjectStatus = "closure_reviewing"
	ProjectClosed           ProjectStatus = "closed"
)

// Project 大创项目
type Project struct {
	Id          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	Category    string        `json:"category,omitempty"`
	College     string        `json:"college,omitempty"`
	Creator     *User         `json:"creator,omitempty"`
	Members     []User        `json:"members,omitempty"`
	Advisor     *User         `json:"advisor,omitempty"`
	Funds       string        `json:"funds,omitempty"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	SubmittedAt string        `json:"submitted_at,omitempty"`
}

// Achievement 项目成果
type Achievement struct {
	Id          int64  `json:"id"`
	ProjectId   int64  `json:"project"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileUrl     string `json:"file_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}
