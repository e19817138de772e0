package dto

type SearchQuery struct {
	Q     string `form:"q" binding:"required,max=100"`
	Limit int64  `form:"limit" binding:"omitempty,min=1,max=100"`
}
