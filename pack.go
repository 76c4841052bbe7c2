package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"texatlas/atlas"
	"texatlas/internal/config"
	"texatlas/internal/logger"
	"texatlas/internal/texio"
)

// packSummary 打包结果
type packSummary struct {
	AtlasPath    string
	ManifestPath string
	Result       *atlas.Result
	UsedRate     float64 // 图集空间利用率
}

func cmdPack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	configPath := fs.String("config", "", "配置文件 (YAML)")
	input := fs.String("input", "", "输入目录")
	output := fs.String("output", "", "输出目录")
	name := fs.String("name", "", "图集文件名 (不含扩展名)")
	format := fs.String("format", "", "图集图片格式 (png, jpg, bmp, tif)")
	maxSize := fs.Int("max-size", 0, "图集最大尺寸 (256 - 8192)")
	padding := fs.Int("padding", 0, "贴图间距")
	algorithm := fs.String("algorithm", "", "打包算法 (shelf, skyline, guillotine)")
	variant := fs.String("variant", "", "打包算法变体 (BestAreaFit, BestShortSideFit ...)")
	order := fs.String("order", "", "排序方式 (height, area, perimeter, diff, maxside)")
	pow2 := fs.Bool("pow2", true, "图集尺寸取2的幂")
	origin := fs.String("origin", "", "UV 原点 (bottom-left, top-left)")
	sortFiles := fs.Bool("sort", true, "按文件名自然排序")
	logs := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	// 命令行参数覆盖配置文件
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Dir = *input
		case "output":
			cfg.Output.Dir = *output
		case "name":
			cfg.Output.Name = *name
		case "format":
			cfg.Output.Format = *format
		case "max-size":
			cfg.Pack.MaxSize = *maxSize
		case "padding":
			cfg.Pack.Padding = *padding
		case "algorithm":
			cfg.Pack.Algorithm = *algorithm
		case "variant":
			cfg.Pack.Variant = *variant
		case "order":
			cfg.Pack.Order = *order
		case "pow2":
			cfg.Pack.PowerOfTwo = *pow2
		case "origin":
			cfg.Pack.Origin = *origin
		case "sort":
			cfg.Input.Sort = *sortFiles
		case "log-level":
			cfg.Logging.Level = *logs.level
		case "log-file":
			cfg.Logging.LogFile = *logs.file
		}
	})
	initLogging(cfg.Logging.Level, cfg.Logging.LogFile)

	_, err = runPack(ctx, cfg)
	return err
}

func runPack(ctx context.Context, cfg *config.Config) (*packSummary, error) {
	opts, err := cfg.AtlasOptions()
	if err != nil {
		return nil, err
	}
	log := logger.Log
	opts.Logger = log
	total := time.Now()

	start := time.Now()
	images, err := texio.LoadDir(ctx, cfg.Input.Dir, cfg.Input.Sort)
	if err != nil {
		return nil, err
	}
	log.Info("读取图片文件",
		zap.String("dir", cfg.Input.Dir),
		zap.Int("count", len(images)),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	res, err := atlas.PackWith(images, opts)
	if errors.Is(err, atlas.ErrCapacityExceeded) {
		return nil, fmt.Errorf("%w: 请增大 -max-size 或减小 -padding", err)
	}
	if err != nil {
		return nil, err
	}
	log.Info("打包完成",
		zap.Stringer("heuristic", opts.Heuristic),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Duration("elapsed", time.Since(start)))

	summary := &packSummary{
		AtlasPath:    filepath.Join(cfg.Output.Dir, cfg.AtlasFile()),
		ManifestPath: filepath.Join(cfg.Output.Dir, cfg.ManifestFile()),
		Result:       res,
		UsedRate:     usedRate(res),
	}

	start = time.Now()
	if err := texio.SaveImage(res.Atlas, summary.AtlasPath); err != nil {
		return nil, err
	}
	log.Info("图集写入", zap.String("path", summary.AtlasPath), zap.Duration("elapsed", time.Since(start)))

	manifest := texio.NewManifest(res, cfg.AtlasFile(), cfg.Pack.Padding, VERSION)
	if err := manifest.Write(summary.ManifestPath); err != nil {
		return nil, fmt.Errorf("生成JSON元数据失败: %w", err)
	}
	log.Info("图集元数据", zap.String("path", summary.ManifestPath))

	log.Info("完成",
		zap.String("size", fmt.Sprintf("%dx%d", res.Width, res.Height)),
		zap.String("used", fmt.Sprintf("%.2f%%", summary.UsedRate*100)),
		zap.Duration("total", time.Since(total)))
	return summary, nil
}

// usedRate 贴图面积占图集面积的比例
func usedRate(res *atlas.Result) float64 {
	if res.Width == 0 || res.Height == 0 {
		return 0
	}
	var used int
	for _, px := range res.Pixels {
		used += px.Area()
	}
	return float64(used) / float64(res.Width*res.Height)
}
