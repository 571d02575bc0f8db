package request

// ProductsQuery 상품 목록 조회 조건입니다.
type ProductsQuery struct {
	// Category 카테고리 (비어 있거나 "all"이면 전체)
	Category string `query:"category" example:"Papel Higiénico"`

	// Search 이름과 참조 코드에서 찾을 검색어
	Search string `query:"q" example:"rollo"`

	// Sort 정렬 기준 (nombre, precio-asc, precio-desc, referencia)
	Sort string `query:"sort" example:"precio-asc"`
}

// BookQuery 카탈로그 책 조회 조건입니다.
type BookQuery struct {
	// Layout 배치 (sections 또는 categories). 비어 있으면 서버 기본값
	Layout string `query:"layout" example:"sections"`

	// Page 펼칠 페이지 번호 (0 기준)
	Page int `query:"page" example:"4"`

	// Direction 넘김 방향 (left 또는 right). 비어 있으면 현재 위치 기준으로 정합니다.
	Direction string `query:"direction" example:"right"`
}
