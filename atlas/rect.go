package atlas

import (
	"fmt"
	"math"

	"texatlas/rectpack"
)

// Rect 图集归一化坐标中的区域
type Rect struct {
	XMin float32 `json:"xMin"`
	YMin float32 `json:"yMin"`
	XMax float32 `json:"xMax"`
	YMax float32 `json:"yMax"`
}

// Unit 覆盖整张图集的区域
var Unit = Rect{XMin: 0, YMin: 0, XMax: 1, YMax: 1}

// Valid 判断区域是否有限且宽高为正
func (r Rect) Valid() bool {
	for _, v := range [...]float32{r.XMin, r.YMin, r.XMax, r.YMax} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return r.XMin < r.XMax && r.YMin < r.YMax
}

// Width 返回 XMax - XMin
func (r Rect) Width() float32 { return r.XMax - r.XMin }

// Height 返回 YMax - YMin
func (r Rect) Height() float32 { return r.YMax - r.YMin }

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.XMin, r.YMin, r.XMax, r.YMax)
}

// Origin 归一化坐标的起始角
type Origin int

const (
	// BottomLeft 与 GPU 纹理坐标一致：v 向上增长，图片行向下增长
	BottomLeft Origin = iota
	// TopLeft 与图片空间一致：v = y / height
	TopLeft
)

// ParseOrigin 解析 "bottom-left" 或 "top-left"
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "bottom-left", "":
		return BottomLeft, nil
	case "top-left":
		return TopLeft, nil
	}
	return 0, fmt.Errorf("%w: unknown origin %q", ErrInvalidInput, s)
}

func (o Origin) String() string {
	if o == TopLeft {
		return "top-left"
	}
	return "bottom-left"
}

// Normalize 把给定尺寸图集上的像素矩形转换为归一化坐标
func Normalize(px rectpack.Rect, width, height int, origin Origin) Rect {
	w, h := float32(width), float32(height)
	r := Rect{
		XMin: float32(px.X) / w,
		XMax: float32(px.Right()) / w,
	}
	if origin == TopLeft {
		r.YMin = float32(px.Y) / h
		r.YMax = float32(px.Bottom()) / h
	} else {
		r.YMin = float32(height-px.Bottom()) / h
		r.YMax = float32(height-px.Y) / h
	}
	return r
}
