package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"level-proxy/internal/pkg/imageref"
)

const usage = `用法:
  cli encode [-path] <图片URL>   生成图片代理引用（-path 输出完整 /proxy-image/ 路径）
  cli decode <引用>              还原图片代理引用中的原始 URL`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少子命令\n%s", usage)
	}

	switch args[0] {
	case "encode":
		fs := flag.NewFlagSet("encode", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		pathFlag := fs.Bool("path", false, "输出完整的代理路径")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		rawURL := fs.Arg(0)
		if rawURL == "" {
			return fmt.Errorf("缺少图片URL参数")
		}
		if *pathFlag {
			fmt.Fprintln(out, imageref.ProxyPath(rawURL))
		} else {
			fmt.Fprintln(out, imageref.Encode(rawURL))
		}
		return nil
	case "decode":
		if len(args) < 2 || args[1] == "" {
			return fmt.Errorf("缺少引用参数")
		}
		decoded, err := imageref.Decode(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, decoded)
		return nil
	default:
		return fmt.Errorf("未知子命令 %q\n%s", args[0], usage)
	}
}
