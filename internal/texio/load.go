// Package texio 读取源贴图，写出图集、元数据和解包后的贴图
package texio

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"golang.org/x/sync/errgroup"

	// imaging 未注册 webp
	_ "golang.org/x/image/webp"

	"texatlas/atlas"
)

// ErrNoImages 目录中没有可读取的贴图
var ErrNoImages = errors.New("no images found")

// Extensions LoadDir 识别的贴图扩展名
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga"}

// IsImage 判断文件扩展名是否受支持
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// TextureName 贴图名称：去掉扩展名的文件名
func TextureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListDir 返回目录下的贴图文件(不递归)。sorted 为 true 时按自然顺序排列("tile2" 在 "tile10" 之前)
func ListDir(dir string, sorted bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading texture dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	if sorted {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// LoadDir 并行解码目录下的所有贴图，结果顺序与 ListDir 一致
func LoadDir(ctx context.Context, dir string, sorted bool) ([]atlas.Image, error) {
	paths, err := ListDir(dir, sorted)
	if err != nil {
		return nil, err
	}
	return LoadFiles(ctx, paths)
}

// LoadFiles 最多 runtime.NumCPU() 个并发解码，第一个错误会取消其余任务
func LoadFiles(ctx context.Context, paths []string) ([]atlas.Image, error) {
	images := make([]atlas.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Decode(path)
			if err != nil {
				return err
			}
			images[i] = atlas.Image{Name: TextureName(path), Bitmap: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// Decode 读取单个贴图文件
func Decode(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return img, nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// SaveImage 按扩展名编码图片，自动创建父目录
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
