package book

import "fmt"

// Direction 페이지를 넘기는 방향입니다.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// ParseDirection "left", "right"를 Direction으로 바꿉니다.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Left, false
}

// Cursor 두 쪽 펼침 화면의 현재 위치입니다. 왼쪽 페이지의 0 기준 번호를 가리킵니다.
//
// 페이지 넘김은 BeginFlip(GoTo)과 EndFlip 두 단계의 상태 전이이며, 넘기는 중에는
// 다른 이동 요청이 무시됩니다. 타이머는 사용하지 않습니다.
// 동시 사용에 안전하지 않습니다.
type Cursor struct {
	total   int
	current int

	flipping  bool
	pending   int
	direction Direction
}

// NewCursor 첫 페이지를 가리키는 커서를 생성합니다.
func NewCursor(totalPages int) *Cursor {
	return &Cursor{total: max(totalPages, 0)}
}

// Current 현재 왼쪽 페이지 번호입니다.
func (c *Cursor) Current() int { return c.current }

// Total 전체 페이지 수입니다.
func (c *Cursor) Total() int { return c.total }

// Flipping 페이지를 넘기는 중인지 반환합니다.
func (c *Cursor) Flipping() bool { return c.flipping }

// Direction 마지막으로 넘긴 방향입니다.
func (c *Cursor) Direction() Direction { return c.direction }

// GoTo page로 넘기기 시작합니다. 넘기는 중이거나 page가 범위를 벗어나면 무시하고 false를 반환합니다.
//
// 오른쪽으로 넘길 때는 오른쪽 페이지가 끝을 넘지 않도록 total-2 이하로, 왼쪽으로 넘길 때는 0 이상으로 맞춥니다.
func (c *Cursor) GoTo(page int, dir Direction) bool {
	if c.flipping || page < 0 || page >= c.total {
		return false
	}

	target := max(page, 0)
	if dir == Right {
		target = max(min(page, c.total-2), 0)
	}

	c.flipping = true
	c.pending = target
	c.direction = dir

	return true
}

// EndFlip 진행 중인 넘김을 완료합니다. 넘기는 중이 아니면 아무 일도 하지 않습니다.
func (c *Cursor) EndFlip() {
	if !c.flipping {
		return
	}
	c.current = c.pending
	c.flipping = false
}

// Navigate GoTo와 EndFlip을 한 번에 수행합니다.
func (c *Cursor) Navigate(page int, dir Direction) bool {
	if !c.GoTo(page, dir) {
		return false
	}
	c.EndFlip()
	return true
}

// Next 다음 펼침으로 넘기기 시작합니다.
func (c *Cursor) Next() bool {
	return c.GoTo(c.current+2, Right)
}

// Prev 이전 펼침으로 넘기기 시작합니다.
func (c *Cursor) Prev() bool {
	return c.GoTo(c.current-2, Left)
}

// CanNext 다음 펼침이 있는지 반환합니다.
func (c *Cursor) CanNext() bool {
	return !c.flipping && c.current < c.total-2
}

// CanPrev 이전 펼침이 있는지 반환합니다.
func (c *Cursor) CanPrev() bool {
	return !c.flipping && c.current > 0
}

// DirectionTo 썸네일에서 index 페이지를 선택했을 때 넘기는 방향입니다.
func (c *Cursor) DirectionTo(index int) Direction {
	if index > c.current {
		return Right
	}
	return Left
}

// Spread 현재 펼침의 왼쪽, 오른쪽 페이지 번호입니다. 오른쪽 페이지가 없으면 -1입니다.
func (c *Cursor) Spread() (left, right int) {
	left, right = c.current, c.current+1
	if right >= c.total {
		right = -1
	}
	return left, right
}

// Label "Páginas 3-4 de 10" 형식의 위치 표시입니다.
func (c *Cursor) Label() string {
	return fmt.Sprintf("Páginas %d-%d de %d", c.current+1, min(c.current+2, c.total), c.total)
}
