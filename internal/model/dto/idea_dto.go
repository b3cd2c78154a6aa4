package dto

// CreateIdeaRequest 创建点子请求
type CreateIdeaRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Summary  string `json:"summary" binding:"omitempty,max=5000"`
	Problem  string `json:"problem" binding:"omitempty,max=5000"`
	Solution string `json:"solution" binding:"omitempty,max=5000"`
	Market   string `json:"market" binding:"omitempty,max=5000"`
	Stage    string `json:"stage" binding:"omitempty,oneof=concept validating building launched"`
	Tags     string `json:"tags" binding:"omitempty,max=500"`
}

// UpdateIdeaRequest 更新点子请求
type UpdateIdeaRequest struct {
	Title      *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Summary    *string `json:"summary,omitempty" binding:"omitempty,max=5000"`
	Problem    *string `json:"problem,omitempty" binding:"omitempty,max=5000"`
	Solution   *string `json:"solution,omitempty" binding:"omitempty,max=5000"`
	Market     *string `json:"market,omitempty" binding:"omitempty,max=5000"`
	Stage      *string `json:"stage,omitempty" binding:"omitempty,oneof=concept validating building launched"`
	Tags       *string `json:"tags,omitempty" binding:"omitempty,max=500"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// ListIdeasRequest 点子列表查询
type ListIdeasRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Stage    string `form:"stage" binding:"omitempty,oneof=concept validating building launched"`
	Favorite bool   `form:"favorite"`
}
