// Package atlas 把一组命名图片打包为单张图集，并给出每张图片的像素位置和归一化坐标
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"texatlas/rectpack"
)

// DefaultPadding 相邻图片之间的默认像素间距
const DefaultPadding = 2

var (
	// ErrInvalidInput 输入非法：图片列表为空、图片无名或尺寸为0、名称重复、
	// 最大尺寸不为正或间距为负
	ErrInvalidInput = errors.New("invalid input")
	// ErrCapacityExceeded 画布增长到 maxSize x maxSize 后仍放不下全部图片
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// Image 带名称的源图片，打包时只读
type Image struct {
	Name   string
	Bitmap image.Image
}

// Size 返回图片像素尺寸
func (img Image) Size() rectpack.Size {
	if img.Bitmap == nil {
		return rectpack.Size{}
	}
	b := img.Bitmap.Bounds()
	return rectpack.NewSize(b.Dx(), b.Dy())
}

// Options 打包参数
type Options struct {
	// MaxSize 图集宽高上限
	MaxSize int
	// Padding 图片之间的最小间距
	Padding int
	// Heuristic 放置算法
	Heuristic rectpack.Heuristic
	// Sort 放置前的排序方式，nil 时按高度降序
	Sort rectpack.SortFunc
	// PowerOfTwo 最终图集宽高向上取到 2 的幂
	PowerOfTwo bool
	// Origin 归一化坐标的纵向方向
	Origin Origin
	// Logger 调试日志，nil 表示不记录
	Logger *zap.Logger
}

// DefaultOptions 货架算法、2 的幂尺寸、左下角原点
func DefaultOptions(maxSize, padding int) Options {
	return Options{
		MaxSize:    maxSize,
		Padding:    padding,
		Heuristic:  rectpack.ShelfFF,
		PowerOfTwo: true,
		Origin:     BottomLeft,
	}
}

// Result 打包结果，Pack 返回后不再修改
type Result struct {
	// Atlas 合成后的图集，Width x Height 像素
	Atlas  *image.NRGBA
	Width  int
	Height int
	Origin Origin
	// Rects[i] 第 i 张输入图片的归一化位置
	Rects []Rect
	// Pixels[i] 第 i 张输入图片的像素位置，原点在左上角
	Pixels []rectpack.Rect
	// Names[i] 第 i 张输入图片的名称
	Names []string

	index map[string]int
}

// Lookup 按名称返回图片的归一化位置
func (r *Result) Lookup(name string) (Rect, bool) {
	i, ok := r.index[name]
	if !ok {
		return Rect{}, false
	}
	return r.Rects[i], true
}

// Placements 返回名称到位置映射的副本
func (r *Result) Placements() map[string]Rect {
	m := make(map[string]Rect, len(r.Names))
	for i, name := range r.Names {
		m[name] = r.Rects[i]
	}
	return m
}

// Pack 使用 DefaultOptions 打包
func Pack(images []Image, maxSize, padding int) (*Result, error) {
	return PackWith(images, DefaultOptions(maxSize, padding))
}

// PackWith 把图片打包为一张图集，结果的 Rects 和 Pixels 与 images 下标一一对应。
// 失败时不返回图集
func PackWith(images []Image, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := validate(images, opts); err != nil {
		return nil, err
	}

	start := time.Now()
	packer, err := rectpack.NewPacker(opts.MaxSize, opts.MaxSize, opts.Heuristic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	packer.SetPadding(opts.Padding)
	if opts.Sort != nil {
		packer.Sorter(opts.Sort, false)
	}
	for i, img := range images {
		size := img.Size()
		packer.InsertSize(i, size.Width, size.Height)
	}
	if !packer.Pack() {
		log.Debug("packing failed",
			zap.Int("images", len(images)),
			zap.Int("unpacked", len(packer.Unpacked())),
			zap.Int("maxSize", opts.MaxSize))
		return nil, fmt.Errorf("%w: %d of %d images do not fit in %dx%d",
			ErrCapacityExceeded, len(packer.Unpacked()), len(images), opts.MaxSize, opts.MaxSize)
	}
	canvas := packer.Canvas()
	final := packer.Shrink(opts.PowerOfTwo)
	log.Debug("packed",
		zap.Stringer("algorithm", opts.Heuristic),
		zap.Stringer("canvas", canvas),
		zap.Stringer("atlas", final),
		zap.Float64("used", packer.Used(false)),
		zap.Duration("elapsed", time.Since(start)))

	res := &Result{
		Width:  final.Width,
		Height: final.Height,
		Origin: opts.Origin,
		Rects:  make([]Rect, len(images)),
		Pixels: make([]rectpack.Rect, len(images)),
		Names:  make([]string, len(images)),
		index:  make(map[string]int, len(images)),
	}
	for id, px := range packer.Map() {
		px.ID = 0
		res.Pixels[id] = px
		res.Rects[id] = Normalize(px, final.Width, final.Height, opts.Origin)
	}
	for i, img := range images {
		res.Names[i] = img.Name
		res.index[img.Name] = i
	}

	start = time.Now()
	res.Atlas = compose(images, res.Pixels, final)
	log.Debug("composed atlas", zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func validate(images []Image, opts Options) error {
	if len(images) == 0 {
		return fmt.Errorf("%w: no images", ErrInvalidInput)
	}
	if opts.MaxSize <= 0 {
		return fmt.Errorf("%w: max size %d", ErrInvalidInput, opts.MaxSize)
	}
	if opts.Padding < 0 {
		return fmt.Errorf("%w: padding %d", ErrInvalidInput, opts.Padding)
	}
	seen := make(map[string]int, len(images))
	for i, img := range images {
		if img.Name == "" {
			return fmt.Errorf("%w: image %d has no name", ErrInvalidInput, i)
		}
		if j, dup := seen[img.Name]; dup {
			return fmt.Errorf("%w: images %d and %d are both named %q", ErrInvalidInput, j, i, img.Name)
		}
		seen[img.Name] = i
		if img.Bitmap == nil {
			return fmt.Errorf("%w: image %q has no bitmap", ErrInvalidInput, img.Name)
		}
		if img.Size().IsEmpty() {
			return fmt.Errorf("%w: image %q is empty", ErrInvalidInput, img.Name)
		}
	}
	return nil
}

// compose 在透明画布上按像素位置绘制每张图片
func compose(images []Image, pixels []rectpack.Rect, size rectpack.Size) *image.NRGBA {
	dst := imaging.New(size.Width, size.Height, color.NRGBA{0, 0, 0, 0})
	for i, img := range images {
		px := pixels[i]
		bounds := image.Rect(px.X, px.Y, px.Right(), px.Bottom())
		draw.Draw(dst, bounds, img.Bitmap, img.Bitmap.Bounds().Min, draw.Src)
	}
	return dst
}
