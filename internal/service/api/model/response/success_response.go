package response

// SuccessResponse 본문이 필요 없는 요청의 성공 응답
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
