package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"go.uber.org/zap"

	"texatlas/internal/logger"
	"texatlas/internal/texio"
)

// 解包图集
func cmdUnpack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "", "图集元数据 (JSON)")
	outputDir := fs.String("output", "unpacked", "输出目录")
	logs := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" {
		fs.Usage()
		return errors.New("未指定解包路径")
	}
	initLogging(*logs.level, *logs.file)

	start := time.Now()
	written, err := texio.Unpack(ctx, *manifestPath, *outputDir)
	if err != nil {
		return err
	}
	logger.Log.Info("图集解包完成",
		zap.String("output", *outputDir),
		zap.Int("count", len(written)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
