package dto

// GeneratePromptRequest 生成提示词请求
type GeneratePromptRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	IdeaID    *int64 `json:"idea_id,omitempty"`
	Objective string `json:"objective" binding:"required,max=2000"`
	Audience  string `json:"audience" binding:"omitempty,max=200"`
	Tone      string `json:"tone" binding:"omitempty,max=50"`
	ModelName string `json:"model_name" binding:"required"`
}

// GeneratePromptResponse 生成提示词响应
type GeneratePromptResponse struct {
	PromptID int64 `json:"prompt_id"`
	JobID    int64 `json:"job_id"`
}

// ListPromptsRequest 提示词列表查询
type ListPromptsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending generating completed failed"`
}
