package rectpack

import (
	"math"
	"slices"
)

type scoreFunc func(width, height int, freeRect *Rect) int

type guillotinePack struct {
	algorithmBase
	splitMethod Heuristic
	scoreRect   scoreFunc
	freeRects   []Rect
}

func newGuillotine(width, height int, heuristic Heuristic) *guillotinePack {
	var packer guillotinePack
	switch heuristic.Bin() {
	case BestShortSideFit:
		packer.scoreRect = scoreBestShort
	case BestLongSideFit:
		packer.scoreRect = scoreBestLong
	case WorstAreaFit:
		packer.scoreRect = func(w, h int, r *Rect) int { return -scoreBestArea(w, h, r) }
	case WorstShortSideFit:
		packer.scoreRect = func(w, h int, r *Rect) int { return -scoreBestShort(w, h, r) }
	case WorstLongSideFit:
		packer.scoreRect = func(w, h int, r *Rect) int { return -scoreBestLong(w, h, r) }
	default:
		packer.scoreRect = scoreBestArea
	}
	packer.splitMethod = heuristic.Split()
	packer.Reset(width, height)
	return &packer
}

func (p *guillotinePack) Reset(width, height int) {
	p.algorithmBase.Reset(width, height)
	p.freeRects = p.freeRects[:0]
	p.freeRects = append(p.freeRects, NewRect(0, 0, p.maxWidth, p.maxHeight))
}

// Insert 按给定顺序逐个放置尺寸，每个尺寸只在空闲矩形中挑选评分最好的一个，
// 完全贴合的空闲矩形立即胜出。
func (p *guillotinePack) Insert(sizes ...Size) []Size {
	var failed []Size
	for _, size := range sizes {
		index := p.findFreeRect(size)
		if index < 0 {
			failed = append(failed, size)
			continue
		}
		free := p.freeRects[index]
		node := Rect{Point: free.Point, Size: size}
		p.freeRects = slices.Delete(p.freeRects, index, index+1)
		p.splitByHeuristic(&free, &node)
		p.mergeFreeList()
		p.place(node)
	}
	return failed
}

// findFreeRect 返回能容纳 size 且评分最好的空闲矩形下标，放不下时返回 -1
func (p *guillotinePack) findFreeRect(size Size) int {
	if size.IsEmpty() {
		return -1
	}
	best, bestScore := -1, math.MaxInt
	for i := range p.freeRects {
		freeRect := &p.freeRects[i]
		if size.Width == freeRect.Width && size.Height == freeRect.Height {
			return i
		}
		if size.Width <= freeRect.Width && size.Height <= freeRect.Height {
			if score := p.scoreRect(size.Width, size.Height, freeRect); score < bestScore {
				best, bestScore = i, score
			}
		}
	}
	return best
}

func scoreBestArea(width, height int, freeRect *Rect) int {
	return freeRect.Width*freeRect.Height - width*height
}

func scoreBestShort(width, height int, freeRect *Rect) int {
	leftoverHoriz := abs(freeRect.Width - width)
	leftoverVert := abs(freeRect.Height - height)
	return min(leftoverHoriz, leftoverVert)
}

func scoreBestLong(width, height int, freeRect *Rect) int {
	leftoverHoriz := abs(freeRect.Width - width)
	leftoverVert := abs(freeRect.Height - height)
	return max(leftoverHoriz, leftoverVert)
}

func (p *guillotinePack) splitAlongAxis(freeRect, placedRect *Rect, splitHorizontal bool) {
	var bottom Rect
	bottom.X = freeRect.X
	bottom.Y = freeRect.Y + placedRect.Height
	bottom.Height = freeRect.Height - placedRect.Height
	var right Rect
	right.X = freeRect.X + placedRect.Width
	right.Y = freeRect.Y
	right.Width = freeRect.Width - placedRect.Width
	if splitHorizontal {
		bottom.Width = freeRect.Width
		right.Height = placedRect.Height
	} else {
		bottom.Width = placedRect.Width
		right.Height = freeRect.Height
	}
	if bottom.Width > 0 && bottom.Height > 0 {
		p.freeRects = append(p.freeRects, bottom)
	}
	if right.Width > 0 && right.Height > 0 {
		p.freeRects = append(p.freeRects, right)
	}
}

func (p *guillotinePack) splitByHeuristic(freeRect, placedRect *Rect) {
	w := freeRect.Width - placedRect.Width
	h := freeRect.Height - placedRect.Height
	var splitHorizontal bool
	switch p.splitMethod {
	case SplitShorterLeftoverAxis:
		splitHorizontal = w <= h
	case SplitLongerLeftoverAxis:
		splitHorizontal = w > h
	case SplitMinimizeArea:
		splitHorizontal = placedRect.Width*h > w*placedRect.Height
	case SplitMaximizeArea:
		splitHorizontal = placedRect.Width*h <= w*placedRect.Height
	case SplitShorterAxis:
		splitHorizontal = freeRect.Width <= freeRect.Height
	case SplitLongerAxis:
		splitHorizontal = freeRect.Width > freeRect.Height
	default:
		splitHorizontal = true
	}

	p.splitAlongAxis(freeRect, placedRect, splitHorizontal)
}

// mergeFreeList 合并共享整条边的相邻空闲矩形
func (p *guillotinePack) mergeFreeList() {
	for i := 0; i < len(p.freeRects); i++ {
		for j := i + 1; j < len(p.freeRects); j++ {
			a, b := &p.freeRects[i], &p.freeRects[j]
			merged := false
			if a.Width == b.Width && a.X == b.X {
				if a.Y == b.Y+b.Height {
					a.Y -= b.Height
					a.Height += b.Height
					merged = true
				} else if a.Y+a.Height == b.Y {
					a.Height += b.Height
					merged = true
				}
			} else if a.Height == b.Height && a.Y == b.Y {
				if a.X == b.X+b.Width {
					a.X -= b.Width
					a.Width += b.Width
					merged = true
				} else if a.X+a.Width == b.X {
					a.Width += b.Width
					merged = true
				}
			}
			if merged {
				p.freeRects = slices.Delete(p.freeRects, j, j+1)
				j--
			}
		}
	}
}
