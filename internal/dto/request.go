package dto

type RejectEventRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=draft published rejected cancelled"`
	Limit  int    `query:"limit" validate:"gte=0,lte=500"`
	Offset int    `query:"offset" validate:"gte=0"`
}
