package rectpack

// packAlgorithm 是一个包装算法的接口
type packAlgorithm interface {
	// 重置包装器到初始状态，设置最大宽高。
	Reset(width, height int)

	// 按给定顺序插入矩形，返回无法包装的尺寸。
	Insert(sizes ...Size) []Size

	// 返回已包装的矩形列表。
	Rects() []Rect
}

// algorithmBase 是一个包装算法的基础实现
type algorithmBase struct {
	packed    []Rect // 已包装的矩形
	maxWidth  int    // 包装器的最大宽度
	maxHeight int    // 包装器的最大高度
}

// Reset 重置包装器的状态，设置新的最大宽度和最大高度，清空已包装矩形。
func (p *algorithmBase) Reset(width, height int) {
	p.maxWidth = width
	p.maxHeight = height
	p.packed = p.packed[:0]
}

// Rects 返回已包装的矩形列表。
func (p *algorithmBase) Rects() []Rect {
	return p.packed
}

// place 记录一个已放置的矩形
func (p *algorithmBase) place(rect Rect) {
	p.packed = append(p.packed, rect)
}
