package model

// ReviewStage 审核阶段：立项、中期、结题
type ReviewStage string

const (
	StageEstablishment ReviewStage = "establishment"
	StageMidterm       ReviewStage = "midterm"
	StageClosure       ReviewStage = "closure"
)

// Review 待办/已办审核任务
type Review struct {
	Id        int64       `json:"id"`
	ProjectId int64       `json:"project"`
	Title     string      `json:"project_title,omitempty"`
	Stage     ReviewStage `json:"stage"`
	Status    string      `json:"status"` // pending / approved / rejected
	Comment   string      `json:"comment,omitempty"`
	Score     *int        `json:"score,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// RejectTarget 驳回可回退到的流程节点
type RejectTarget struct {
	Node  string `json:"node"`
	Label string `json:"label"`
}

// ReviewAction 审核动作请求体
type ReviewAction struct {
	Action  string `json:"action"` // approve / reject
	Comment string `json:"comment,omitempty"`
	Score   *int   `json:"score,omitempty"`
	// RejectTarget 驳回时可配置的回退节点，空值由服务端按
	// 流程配置决定。
	RejectTarget string `json:"reject_target,omitempty"`
}
