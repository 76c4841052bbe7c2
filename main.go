// texatlas 将一组贴图打包为单张图集, 并把网格 UV 重映射到图集中.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"texatlas/internal/logger"
)

const (
	VERSION = "0.2.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "pack":
		err = cmdPack(ctx, args)
	case "remap":
		err = cmdRemap(ctx, args)
	case "unpack":
		err = cmdUnpack(ctx, args)
	case "version":
		fmt.Println("texatlas", VERSION)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if code := finish(command, err); code != 0 {
		os.Exit(code)
	}
}

// finish 记录命令错误后再刷新日志, 返回进程退出码
func finish(command string, err error) int {
	code := 0
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		logger.Log.Error("执行失败", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		code = 1
	}
	logger.Sync()
	return code
}

func printUsage() {
	fmt.Println(`texatlas - 贴图图集打包工具

用法:
  texatlas <command> [options]

命令:
  pack     打包输入目录中的贴图, 输出图集图片和 JSON 元数据
  remap    按图集元数据重映射网格 UV (YAML)
  unpack   将图集拆分回单独的贴图
  version  显示版本

示例:
  texatlas pack -input textures -output output -max-size 2048 -padding 2
  texatlas remap -manifest output/atlas.json -meshes meshes.yaml -out meshes_atlas.yaml
  texatlas unpack -manifest output/atlas.json -output unpacked`)
}

// logFlags 日志相关的公共参数
type logFlags struct {
	level *string
	file  *string
}

func addLogFlags(fs *flag.FlagSet) logFlags {
	return logFlags{
		level: fs.String("log-level", "info", "日志级别 (debug, info, warn, error)"),
		file:  fs.String("log-file", "", "日志文件, 为空则只输出到控制台"),
	}
}

func initLogging(level, file string) {
	opts := logger.DefaultOptions()
	opts.Level = level
	opts.File = file
	logger.Init(opts)
}
