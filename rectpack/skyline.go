package rectpack

import (
	"cmp"
	"container/heap"
	"fmt"
)

// skyLine 是一段水平天际线，x/y 为左端点，len 为长度

type skyLine struct {
	x   int
	y   int
	len int
}

func (s *skyLine) String() string {
	return fmt.Sprintf("SkyLine{x=%d, y=%d, len=%d}", s.x, s.y, s.len)
}

// The smallest pile of skyline: lowest first, then leftmost

type skyLineHeap []*skyLine

func (h skyLineHeap) Len() int { return len(h) }

func (h skyLineHeap) Less(i, j int) bool {
	if h[i].y == h[j].y {
		return h[i].x < h[j].x
	}
	return h[i].y < h[j].y
}
func (h skyLineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *skyLineHeap) Push(x any) {
	*h = append(*h, x.(*skyLine))
}

func (h *skyLineHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// skylinePack 天际线算法：每次取最低最左的天际线，
// 在所有未放置的矩形中选出评分最高的放在上面

type skylinePack struct {
	algorithmBase
	queue skyLineHeap
}

func newSkyline(width, height int) *skylinePack {
	var packer skylinePack
	packer.Reset(width, height)
	return &packer
}

func (p *skylinePack) Reset(width, height int) {
	p.algorithmBase.Reset(width, height)
	p.queue = p.queue[:0]
	heap.Push(&p.queue, &skyLine{x: 0, y: 0, len: width})
}

func (p *skylinePack) Insert(sizes ...Size) []Size {
	used := make([]bool, len(sizes))
	placed := 0
	for p.queue.Len() != 0 && placed < len(sizes) {
		// Get the current lowest and leftmost skyline

		line := heap.Pop(&p.queue).(*skyLine)
		hl, hr := p.walls(line)

		// Record the index of the maximum score rectangle, the maximum score

		maxIndex, maxScore := -1, -1
		for i, size := range sizes {
			if used[i] || size.IsEmpty() {
				continue
			}
			if score := p.score(size.Width, size.Height, line, hl, hr); score > maxScore {
				maxScore = score
				maxIndex = i
			}
		}
		if maxScore < 0 {
			// 没有矩形能放下，与相邻天际线合并后重试

			p.combine(line)
			continue
		}
		size := sizes[maxIndex]
		var rect Rect
		if hl >= hr {
			// When the score is 2, the rectangle is placed on the right side of the skyline

			if maxScore == 2 {
				rect = p.placeRight(size, line)
			} else {
				rect = p.placeLeft(size, line)
			}
		} else {
			if maxScore == 4 || maxScore == 0 {
				rect = p.placeRight(size, line)
			} else {
				rect = p.placeLeft(size, line)
			}
		}
		used[maxIndex] = true
		placed++
		p.place(rect)
	}

	var failed []Size
	for i, size := range sizes {
		if !used[i] {
			failed = append(failed, size)
		}
	}
	return failed
}

// walls 返回天际线左右两侧墙的高度（相邻天际线或容器顶部相对当前天际线的高度差）
func (p *skylinePack) walls(line *skyLine) (hl, hr int) {
	hl = p.maxHeight - line.y
	hr = p.maxHeight - line.y
	count := 0
	for _, other := range p.queue {
		if other.x+other.len == line.x {
			hl = other.y - line.y
			count++
		} else if other.x == line.x+line.len {
			hr = other.y - line.y
			count++
		}
		if count == 2 {
			break
		}
	}
	return hl, hr
}

// placeLeft 将矩形靠左放

func (p *skylinePack) placeLeft(size Size, line *skyLine) Rect {
	rect := Rect{Point: NewPoint(line.x, line.y), Size: size}
	p.push(line.x, line.y+size.Height, size.Width)
	p.push(line.x+size.Width, line.y, line.len-size.Width)
	return rect
}

// placeRight Place the rectangle to the right

func (p *skylinePack) placeRight(size Size, line *skyLine) Rect {
	rect := Rect{Point: NewPoint(line.x+line.len-size.Width, line.y), Size: size}
	p.push(line.x, line.y, line.len-size.Width)
	p.push(rect.X, line.y+size.Height, size.Width)
	return rect
}

// push 将指定属性的天际线加入天际线队列

func (p *skylinePack) push(x, y, length int) {
	if length > 0 {
		heap.Push(&p.queue, &skyLine{x: x, y: y, len: length})
	}
}

// combine 把放不下任何矩形的天际线抬升到相邻较高的天际线并合并；
// 找不到可合并的邻居时该天际线被丢弃

func (p *skylinePack) combine(line *skyLine) {
	merged := false
	for i, other := range p.queue {
		if line.y > other.y {
			continue
		}
		if line.x == other.x+other.len {
			heap.Remove(&p.queue, i)
			merged = true
			line.x = other.x
			line.y = other.y
			line.len += other.len
			break
		}
		if line.x+line.len == other.x {
			heap.Remove(&p.queue, i)
			merged = true
			line.y = other.y
			line.len += other.len
			break
		}
	}
	if merged {
		heap.Push(&p.queue, line)
	}
}

// score 对矩形进行评分，如果评分为 -1 ，则说明该矩形不能放置在该天际线上。
// 评分越高，矩形与天际线及两侧墙贴合得越好。

func (p *skylinePack) score(w, h int, line *skyLine, hl, hr int) int {
	// The current skyline length is smaller than the current rectangle width and cannot be put down

	if line.len < w {
		return -1
	}
	// If it exceeds the upper bound, it cannot be released

	if line.y+h > p.maxHeight {
		return -1
	}
	high, low := hl, hr
	if hl < hr {
		high, low = hr, hl
	}
	fullWidth := cmp.Compare(w, line.len) == 0
	switch {
	case fullWidth && h == high:
		return 7
	case fullWidth && h == low:
		return 6
	case fullWidth && h > high:
		return 5
	case !fullWidth && h == high:
		return 4
	case fullWidth && h < high && h > low:
		return 3
	case !fullWidth && h == low:
		return 2
	case fullWidth && h < low:
		return 1
	case !fullWidth:
		return 0
	}
	return -1
}
