package rectpack

import (
	"cmp"
	"fmt"
	"strings"
)

// SortFunc 定义矩形尺寸比较函数的原型
// 返回值:
//
//	-1: a 排在 b 之前
//	 0: 保持输入顺序
//	 1: a 排在 b 之后
type SortFunc func(a, b Size) int

// SortHeight 按高度降序排序，高度相同时按宽度降序(架式打包的经典顺序)
func SortHeight(a, b Size) int {
	if c := cmp.Compare(b.Height, a.Height); c != 0 {
		return c
	}
	return cmp.Compare(b.Width, a.Width)
}

// SortArea 按矩形面积降序排序(从大到小)
func SortArea(a, b Size) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortPerimeter 按矩形周长降序排序(从大到小)
func SortPerimeter(a, b Size) int {
	return cmp.Compare(b.Perimeter(), a.Perimeter())
}

// SortDiff 按矩形宽高差降序排序(从大到小)
func SortDiff(a, b Size) int {
	return cmp.Compare(abs(b.Width-b.Height), abs(a.Width-a.Height))
}

// SortMaxSide 按矩形最长边降序排序(从大到小)
func SortMaxSide(a, b Size) int {
	return cmp.Compare(b.MaxSide(), a.MaxSide())
}

// ResolveSort 按名称返回排序函数, 空名称为 SortHeight
func ResolveSort(name string) (SortFunc, error) {
	switch strings.ToLower(name) {
	case "", "height":
		return SortHeight, nil
	case "area":
		return SortArea, nil
	case "perimeter":
		return SortPerimeter, nil
	case "diff":
		return SortDiff, nil
	case "maxside":
		return SortMaxSide, nil
	}
	return nil, fmt.Errorf("unknown sort order %q", name)
}
