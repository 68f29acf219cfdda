package models

// SubmitToolRequest carries the submission form fields. Name and URL are the
// minimum required to create a draft.
type SubmitToolRequest struct {
	Name             string `form:"name" json:"name" validate:"required"`
	URL              string `form:"url" json:"url" validate:"required,url"`
	ShortDescription string `form:"short_description" json:"short_description"`
	LongDescription  string `form:"long_description" json:"long_description"`
	LogoURL          string `form:"logo_url" json:"logo_url"`
	Category         string `form:"category" json:"category"`
	Tags             string `form:"tags" json:"tags"`
}

type ToolListParams struct {
	Query string `form:"q"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=20"`
}
