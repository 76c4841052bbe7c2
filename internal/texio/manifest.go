package texio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"texatlas/atlas"
	"texatlas/rectpack"
)

// Meta 生成元数据的工具信息
type Meta struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Region 图集像素区域，原点在左上角
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Texture 单张贴图的位置
type Texture struct {
	Region Region     `json:"region"`
	UV     atlas.Rect `json:"uv"`
}

// Manifest 与图集一起写出的 JSON 元数据
type Manifest struct {
	Meta     Meta               `json:"meta"`
	Atlas    string             `json:"atlas"`
	Size     rectpack.Size      `json:"size"`
	Padding  int                `json:"padding"`
	Origin   string             `json:"origin"`
	Textures map[string]Texture `json:"textures"`
}

// NewManifest 描述打包结果 res，图集以 atlasFile(相对元数据文件)保存
func NewManifest(res *atlas.Result, atlasFile string, padding int, version string) *Manifest {
	m := &Manifest{
		Meta: Meta{
			Version:   version,
			Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		},
		Atlas:    atlasFile,
		Size:     rectpack.NewSize(res.Width, res.Height),
		Padding:  padding,
		Origin:   res.Origin.String(),
		Textures: make(map[string]Texture, len(res.Names)),
	}
	for i, name := range res.Names {
		px := res.Pixels[i]
		m.Textures[name] = Texture{
			Region: Region{X: px.X, Y: px.Y, W: px.Width, H: px.Height},
			UV:     res.Rects[i],
		}
	}
	return m
}

// Lookup 按名称返回贴图的归一化位置
func (m *Manifest) Lookup(name string) (atlas.Rect, bool) {
	t, ok := m.Textures[name]
	return t.UV, ok
}

// Write 以缩进 JSON 写出元数据
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest 读取元数据并检查每个区域是否有效
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Atlas == "" {
		return nil, fmt.Errorf("manifest %s: %w: missing atlas", path, atlas.ErrInvalidInput)
	}
	for name, t := range m.Textures {
		if !t.UV.Valid() {
			return nil, fmt.Errorf("manifest %s: texture %q: %w: uv %s", path, name, atlas.ErrInvalidInput, t.UV)
		}
	}
	return &m, nil
}

// AtlasPath 返回相对元数据文件解析后的图集路径
func (m *Manifest) AtlasPath(manifestPath string) string {
	if filepath.IsAbs(m.Atlas) {
		return m.Atlas
	}
	return filepath.Join(filepath.Dir(manifestPath), m.Atlas)
}
