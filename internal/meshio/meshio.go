// Package meshio 读写保存网格 UV 通道的 YAML 文档
package meshio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"texatlas/uvmap"
)

// Document 网格集合的文件格式
type Document struct {
	Meshes []MeshEntry `yaml:"meshes"`
}

// MeshEntry 单个网格：名称、采样的贴图、[u, v] 坐标列表。
// Atlas 在重映射后写入，表示 UV 已指向该图集
type MeshEntry struct {
	Name    string       `yaml:"name"`
	Texture string       `yaml:"texture"`
	Atlas   string       `yaml:"atlas,omitempty"`
	UVs     [][2]float32 `yaml:"uvs,flow"`
}

// Load 读取网格文档
func Load(path string) ([]*uvmap.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading meshes: %w", err)
	}
	return Parse(data)
}

// Parse 解析网格文档，每个网格都必须指定贴图
func Parse(data []byte) ([]*uvmap.Mesh, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing meshes: %w", err)
	}
	meshes := make([]*uvmap.Mesh, len(doc.Meshes))
	for i, e := range doc.Meshes {
		if e.Texture == "" {
			return nil, fmt.Errorf("mesh %d (%q): missing texture", i, e.Name)
		}
		uvs := make([]mgl32.Vec2, len(e.UVs))
		for j, uv := range e.UVs {
			uvs[j] = mgl32.Vec2(uv)
		}
		meshes[i] = &uvmap.Mesh{Name: e.Name, Texture: e.Texture, Atlas: e.Atlas, UVs: uvs}
	}
	return meshes, nil
}

// Marshal 把网格编码为 YAML 文档
func Marshal(meshes []*uvmap.Mesh) ([]byte, error) {
	doc := Document{Meshes: make([]MeshEntry, len(meshes))}
	for i, m := range meshes {
		uvs := make([][2]float32, len(m.UVs))
		for j, uv := range m.UVs {
			uvs[j] = [2]float32(uv)
		}
		doc.Meshes[i] = MeshEntry{Name: m.Name, Texture: m.Texture, Atlas: m.Atlas, UVs: uvs}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save 写出网格文档，自动创建父目录
func Save(meshes []*uvmap.Mesh, path string) error {
	data, err := Marshal(meshes)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
