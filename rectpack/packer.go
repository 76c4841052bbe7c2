package rectpack

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Packer 包含2D矩形包装器的状态。
//
// Packer 工作在离线模式：Insert 只收集尺寸，Pack 一次性排序并放置全部尺寸。
// 画布从能容纳最大边和总面积的最小 2 的幂开始，放不下时逐次加倍（先宽后高），
// 直到达到最大宽高。
type Packer struct {
	// pending 包含所有已插入的尺寸
	pending []Size

	// packed 包含上次 Pack 放置成功的矩形(已移除间距)
	packed []Rect

	// unpacked 包含上次 Pack 未能放置的尺寸
	unpacked []Size

	// algo 是实现具体包装算法的实例
	algo packAlgorithm

	// sortFunc 定义在排序时用于比较尺寸大小的函数
	//
	// 默认值：SortHeight
	sortFunc SortFunc

	// sortRev 表示是否启用反向排序
	sortRev bool

	// Padding 定义相邻矩形之间预留的最小间距。值为0或负数
	// 表示矩形将被紧密排列。画布边缘不需要间距。
	//
	// 默认值：0
	Padding int

	maxWidth  int
	maxHeight int

	// canvas 是上次 Pack 使用的画布尺寸(不含间距)
	canvas Size
}

// NewPacker 创建并初始化一个新的矩形包装器
// 参数:
//
//	maxWidth - 包装区域的最大宽度(必须大于0)
//	maxHeight - 包装区域的最大高度(必须大于0)
//	heuristic - 包装算法和方法组合
func NewPacker(maxWidth, maxHeight int, heuristic Heuristic) (*Packer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("width and height must be greater than 0 (given %vx%v)", maxWidth, maxHeight)
	}
	p := &Packer{
		sortFunc:  SortHeight,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
	switch heuristic.Algorithm() {
	case Shelf:
		p.algo = newShelf(maxWidth, maxHeight, heuristic)
	case Skyline:
		p.algo = newSkyline(maxWidth, maxHeight)
	case Guillotine:
		p.algo = newGuillotine(maxWidth, maxHeight, heuristic)
	default:
		return nil, errors.New("heuristics specify an invalid algorithm")
	}
	return p, nil
}

// SetPadding 设置相邻矩形之间的间距
func (p *Packer) SetPadding(padding int) {
	p.Padding = max(padding, 0)
}

// Insert 向包装器中插入多个尺寸，等待 Pack 统一打包
func (p *Packer) Insert(sizes ...Size) {
	p.pending = append(p.pending, sizes...)
}

// InsertSize 向包装器中插入指定ID和尺寸的矩形
func (p *Packer) InsertSize(id, width, height int) {
	p.Insert(NewSizeID(id, width, height))
}

// Sorter 设置用于packing的排序函数和排序顺序
// 参数:
//
//	compare - 用于比较两个尺寸大小的函数，nil 表示保持插入顺序
//	reverse - 是否启用反向排序
func (p *Packer) Sorter(compare SortFunc, reverse bool) {
	p.sortFunc = compare
	p.sortRev = reverse
}

// Canvas 返回上次 Pack 使用的画布尺寸
func (p *Packer) Canvas() Size {
	return p.canvas
}

// Rects 获取所有已成功包装的矩形(由内部管理，如需修改请复制)
func (p *Packer) Rects() []Rect {
	return p.packed
}

// Unpacked 获取上次打包失败的尺寸(由内部管理，如需修改请复制)
func (p *Packer) Unpacked() []Size {
	return p.unpacked
}

// Size 计算包含所有已包装矩形所需的最小尺寸
func (p *Packer) Size() Size {
	var size Size
	for _, rect := range p.packed {
		size.Width = max(size.Width, rect.Right())
		size.Height = max(size.Height, rect.Bottom())
	}
	return size
}

// Used 计算当前空间利用率
// 参数:
//
//	current - true:按最小包围尺寸计算 false:按画布尺寸计算
func (p *Packer) Used(current bool) float64 {
	size := p.canvas
	if current {
		size = p.Size()
	}
	if size.IsEmpty() {
		return 0
	}
	area := 0
	for _, rect := range p.packed {
		area += rect.Area()
	}
	return float64(area) / float64(size.Area())
}

// Map 创建矩形ID到矩形对象的映射
func (p *Packer) Map() map[int]Rect {
	mapping := make(map[int]Rect, len(p.packed))
	for _, rect := range p.packed {
		mapping[rect.ID] = rect
	}
	return mapping
}

// Pack 打包所有已插入的尺寸
// 返回:
//
//	true: 全部打包成功 false: 达到最大尺寸仍有矩形放不下(可通过Unpacked获取)
func (p *Packer) Pack() bool {
	p.packed = nil
	p.unpacked = nil
	if len(p.pending) == 0 {
		p.canvas = Size{}
		return true
	}
	sizes := p.sorted()
	for i := range sizes {
		sizes[i] = padSize(sizes[i], p.Padding)
	}
	pad := max(p.Padding, 0)
	width, height := p.initialCanvas(sizes)
	for {
		p.algo.Reset(width+pad, height+pad)
		failed := p.algo.Insert(sizes...)
		p.canvas = NewSize(width, height)
		p.packed = make([]Rect, 0, len(p.algo.Rects()))
		for _, rect := range p.algo.Rects() {
			p.packed = append(p.packed, unpadRect(rect, p.Padding))
		}
		if len(failed) == 0 {
			return true
		}
		if width >= p.maxWidth && height >= p.maxHeight {
			p.unpacked = make([]Size, len(failed))
			for i, size := range failed {
				p.unpacked[i] = NewSizeID(size.ID, size.Width-pad, size.Height-pad)
			}
			return false
		}
		width, height = p.grow(width, height)
	}
}

// Shrink 把画布收缩为最小包围尺寸；powerOfTwo 为 true 时每条边向上取到 2 的幂
// (不超过最大尺寸)。返回收缩后的画布尺寸。
func (p *Packer) Shrink(powerOfTwo bool) Size {
	size := p.Size()
	if powerOfTwo {
		size.Width = min(NextPowerOfTwo(size.Width), p.maxWidth)
		size.Height = min(NextPowerOfTwo(size.Height), p.maxHeight)
	}
	p.canvas = size
	return size
}

func (p *Packer) sorted() []Size {
	sizes := slices.Clone(p.pending)
	if p.sortFunc != nil {
		if p.sortRev {
			slices.SortStableFunc(sizes, func(a, b Size) int {
				return p.sortFunc(b, a)
			})
		} else {
			slices.SortStableFunc(sizes, p.sortFunc)
		}
	} else if p.sortRev {
		slices.Reverse(sizes)
	}
	return sizes
}

// initialCanvas 返回起始画布：最大边与带间距总面积平方根中较大者向上取 2 的幂
func (p *Packer) initialCanvas(padded []Size) (int, int) {
	pad := max(p.Padding, 0)
	side, area := 1, 0
	for _, size := range padded {
		side = max(side, size.Width-pad, size.Height-pad)
		area += size.Area()
	}
	side = max(side, int(math.Ceil(math.Sqrt(float64(area)))))
	side = NextPowerOfTwo(side)
	return min(side, p.maxWidth), min(side, p.maxHeight)
}

// grow 将画布的一条边加倍：宽不大于高时优先加宽
func (p *Packer) grow(width, height int) (int, int) {
	if width < p.maxWidth && (width <= height || height >= p.maxHeight) {
		return min(width*2, p.maxWidth), height
	}
	return width, min(height*2, p.maxHeight)
}
