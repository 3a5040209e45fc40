package main

import (
	"flag"
	"log"

	"github.com/decker502/pigfarm/pkg/app"
	"github.com/decker502/pigfarm/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	spectateAddr := flag.String("spectate", "", "观战服务监听地址，如 :8080（为空则不启动）")
	configPath := flag.String("config", "", "农场配置文件路径（默认使用内置 data/farm.yaml）")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		ConfigPath:   *configPath,
		SpectateAddr: *spectateAddr,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	window := gameApp.FarmConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	if window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)

	// 启动游戏循环，直到窗口关闭
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
