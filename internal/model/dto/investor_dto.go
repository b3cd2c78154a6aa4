package dto

// CreateInvestorRequest 新建投资人记录
type CreateInvestorRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Firm      string `json:"firm" binding:"omitempty,max=200"`
	Email     string `json:"email" binding:"omitempty,email"`
	Stage     string `json:"stage" binding:"omitempty,oneof=researching contacted meeting passed committed"`
	CheckSize string `json:"check_size" binding:"omitempty,max=50"`
	Notes     string `json:"notes" binding:"omitempty,max=5000"`
}

// UpdateInvestorRequest 更新投资人记录
type UpdateInvestorRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Firm      *string `json:"firm,omitempty" binding:"omitempty,max=200"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Stage     *string `json:"stage,omitempty" binding:"omitempty,oneof=researching contacted meeting passed committed"`
	CheckSize *string `json:"check_size,omitempty" binding:"omitempty,max=50"`
	Notes     *string `json:"notes,omitempty" binding:"omitempty,max=5000"`
}

// ListInvestorsRequest 投资人列表查询
type ListInvestorsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Stage    string `form:"stage" binding:"omitempty,oneof=researching contacted meeting passed committed"`
}

// UploadDeckResponse BP 上传响应
type UploadDeckResponse struct {
	DeckURL string `json:"deck_url"`
	Size    int64  `json:"size"`
}
