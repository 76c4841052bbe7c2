package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"

	"texatlas/internal/logger"
	"texatlas/internal/meshio"
	"texatlas/internal/texio"
	"texatlas/uvmap"
)

func cmdRemap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remap", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "", "图集元数据 (JSON)")
	meshesPath := fs.String("meshes", "", "网格 UV 文件 (YAML)")
	out := fs.String("out", "", "输出文件, 为空则覆盖 -meshes")
	logs := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" || *meshesPath == "" {
		fs.Usage()
		return errors.New("需要指定 -manifest 和 -meshes")
	}
	if *out == "" {
		*out = *meshesPath
	}
	initLogging(*logs.level, *logs.file)
	return runRemap(ctx, *manifestPath, *meshesPath, *out)
}

// runRemap 所有网格都成功后才写出, 失败时不修改输出文件。
// 已记录图集的网格跳过, 重复执行不会叠加映射
func runRemap(ctx context.Context, manifestPath, meshesPath, out string) error {
	start := time.Now()
	manifest, err := texio.ReadManifest(manifestPath)
	if err != nil {
		return err
	}
	meshes, err := meshio.Load(meshesPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	skipped, err := uvmap.AssignAtlas(meshes, manifest, manifest.Atlas)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Log.Warn("跳过已映射的网格", zap.Int("count", skipped))
	}
	if err := meshio.Save(meshes, out); err != nil {
		return err
	}
	logger.Log.Info("UV 重映射完成",
		zap.Int("meshes", len(meshes)-skipped),
		zap.String("out", out),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
