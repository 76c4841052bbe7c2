package rectpack

// shelf 是一行水平货架，高度由放入的第一个矩形决定
type shelf struct {
	y      int // 货架顶部的 y 坐标
	height int // 货架高度
	used   int // 已占用的宽度
}

type shelfPack struct {
	algorithmBase
	bestHeight bool // true: 选择剩余高度最小的货架；false: 选择第一个能放下的货架
	shelves    []shelf
}

func newShelf(width, height int, heuristic Heuristic) *shelfPack {
	var packer shelfPack
	packer.bestHeight = heuristic.Bin() == BestHeightFit
	packer.Reset(width, height)
	return &packer
}

func (p *shelfPack) Reset(width, height int) {
	p.algorithmBase.Reset(width, height)
	p.shelves = p.shelves[:0]
}

// Insert 按顺序放置矩形。每个矩形放入第一个(或最贴合的)高度足够且剩余宽度足够的货架，
// 都放不下时在最后一个货架之上开启新货架。
func (p *shelfPack) Insert(sizes ...Size) []Size {
	var failed []Size
	for _, size := range sizes {
		if size.IsEmpty() || size.Width > p.maxWidth {
			failed = append(failed, size)
			continue
		}
		index := p.findShelf(size)
		if index < 0 {
			top := 0
			if n := len(p.shelves); n > 0 {
				top = p.shelves[n-1].y + p.shelves[n-1].height
			}
			if top+size.Height > p.maxHeight {
				failed = append(failed, size)
				continue
			}
			p.shelves = append(p.shelves, shelf{y: top, height: size.Height})
			index = len(p.shelves) - 1
		}
		s := &p.shelves[index]
		rect := Rect{Point: NewPoint(s.used, s.y), Size: size}
		s.used += size.Width
		p.place(rect)
	}
	return failed
}

func (p *shelfPack) findShelf(size Size) int {
	best := -1
	bestSlack := 0
	for i, s := range p.shelves {
		if s.height < size.Height || p.maxWidth-s.used < size.Width {
			continue
		}
		if !p.bestHeight {
			return i
		}
		slack := s.height - size.Height
		if best < 0 || slack < bestSlack {
			best = i
			bestSlack = slack
		}
	}
	return best
}
