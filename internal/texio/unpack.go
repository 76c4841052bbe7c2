package texio

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
)

// Unpack 从图集中裁出元数据里的每张贴图，以 <name>.png 写入 outDir，按名称顺序返回写出的路径
func Unpack(ctx context.Context, manifestPath, outDir string) ([]string, error) {
	m, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	atlasImg, err := Decode(m.AtlasPath(manifestPath))
	if err != nil {
		return nil, fmt.Errorf("opening atlas: %w", err)
	}
	bounds := atlasImg.Bounds()

	names := make([]string, 0, len(m.Textures))
	for name := range m.Textures {
		names = append(names, name)
	}
	sort.Strings(names)

	written := make([]string, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		r := m.Textures[name].Region
		rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(bounds.Min)
		if rect.Empty() || !rect.In(bounds) {
			return written, fmt.Errorf("texture %q: region %v outside atlas %v", name, rect, bounds)
		}
		out := filepath.Join(outDir, filepath.Base(name)+".png")
		if err := SaveImage(imaging.Crop(atlasImg, rect), out); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}
