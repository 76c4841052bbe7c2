// Package uvmap 把网格的 UV 坐标映射到图集中的贴图区域
package uvmap

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"texatlas/atlas"
)

var (
	// ErrInvalidRect 目标区域退化、反向或含非有限值
	ErrInvalidRect = errors.New("invalid rect")
	// ErrEmptyUVs 空的 UV 集合
	ErrEmptyUVs = fmt.Errorf("%w: empty uv set", atlas.ErrInvalidInput)
	// ErrUnknownTexture 网格引用的贴图不在图集中
	ErrUnknownTexture = errors.New("unknown texture")
)

// Placements 按贴图名查找图集区域，*atlas.Result 和清单都满足该接口
type Placements interface {
	Lookup(name string) (atlas.Rect, bool)
}

// Lerp 线性插值，t 不做截断
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Remap 返回映射到 target 内的新 UV：u 对应 XMin..XMax，v 对应 YMin..YMax。
// [0,1] 之外的坐标按比例外推，平铺关系保持不变。不修改 uvs。
func Remap(uvs []mgl32.Vec2, target atlas.Rect) ([]mgl32.Vec2, error) {
	if len(uvs) == 0 {
		return nil, ErrEmptyUVs
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRect, target)
	}
	out := make([]mgl32.Vec2, len(uvs))
	for i, uv := range uvs {
		out[i] = mgl32.Vec2{
			Lerp(target.XMin, target.XMax, uv.X()),
			Lerp(target.YMin, target.YMax, uv.Y()),
		}
	}
	return out, nil
}

// Mesh 一个网格的 UV 通道及其打包前使用的贴图
type Mesh struct {
	Name    string
	Texture string
	// Atlas 是 UV 当前指向的图集图片，未映射时为空
	Atlas string
	UVs   []mgl32.Vec2
}

// remapped 计算映射后的 UV，不修改网格
func (m *Mesh) remapped(p Placements) ([]mgl32.Vec2, error) {
	rect, ok := p.Lookup(m.Texture)
	if !ok {
		return nil, fmt.Errorf("mesh %q: %w %q", m.Name, ErrUnknownTexture, m.Texture)
	}
	uvs, err := Remap(m.UVs, rect)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	return uvs, nil
}

// Apply 用 m.Texture 对应区域重映射网格 UV，出错时网格不变
func (m *Mesh) Apply(p Placements) error {
	uvs, err := m.remapped(p)
	if err != nil {
		return err
	}
	m.UVs = uvs
	return nil
}

// RemapMeshes 按顺序映射所有网格，遇到第一个错误即停止，之前的网格保留新 UV
func RemapMeshes(meshes []*Mesh, p Placements) error {
	for _, m := range meshes {
		if err := m.Apply(p); err != nil {
			return err
		}
	}
	return nil
}

// AssignAtlas 映射所有尚未指向图集的网格并记录 atlasName。
// 已带 Atlas 的网格跳过并计数；任一网格失败时所有网格都不修改。
func AssignAtlas(meshes []*Mesh, p Placements, atlasName string) (skipped int, err error) {
	pending := make([][]mgl32.Vec2, len(meshes))
	for i, m := range meshes {
		if m.Atlas != "" {
			skipped++
			continue
		}
		if pending[i], err = m.remapped(p); err != nil {
			return 0, err
		}
	}
	for i, m := range meshes {
		if pending[i] == nil {
			continue
		}
		m.UVs = pending[i]
		m.Atlas = atlasName
	}
	return skipped, nil
}
