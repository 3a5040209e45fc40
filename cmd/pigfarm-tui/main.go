// pigfarm-tui 在终端里运行小猪农场
//
// 终端没有按键松开事件，按键在最后一次事件后的一小段时间内视为按住。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/pigfarm/internal/audio"
	"github.com/decker502/pigfarm/pkg/app"
	"github.com/decker502/pigfarm/pkg/game"
	"github.com/decker502/pigfarm/pkg/spectate"
	"github.com/gdamore/tcell/v2"
)

func main() {
	logPath := flag.String("log", "", "日志文件路径（终端被画面占用，默认不输出日志）")
	spectateAddr := flag.String("spectate", "", "观战服务监听地址，如 :8080（为空则不启动）")
	configPath := flag.String("config", "", "农场配置文件路径（为空使用默认值）")
	mute := flag.Bool("mute", false, "关闭提示音")
	flag.Parse()

	// 画面占用终端，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	farmConfig, err := app.LoadFarmConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load farm config: %v\n", err)
		os.Exit(1)
	}

	settingsManager, _ := game.NewSettingsManager(game.OpenSettingsStorage(game.SettingsAppName))
	settings := settingsManager.GetSettings()

	keys, skipped := resolveTermBindings(settingsManager.KeyBindings())
	for _, err := range skipped {
		log.Printf("[TUI] Key binding skipped: %v", err)
	}

	sinks := game.NoticeFanout{game.LogNoticeSink{}}
	if !*mute && settings.SoundEnabled {
		cues := audio.NewCuePlayer(settings.SoundVolume)
		if err := cues.Initialize(); err != nil {
			// 没有声音也能玩
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			defer cues.Cleanup()
			sinks = append(sinks, cues)
		}
	}

	var publisher game.SnapshotPublisher
	if *spectateAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		hub := spectate.NewHub()
		publisher = hub
		go func() {
			if err := hub.Serve(ctx, *spectateAddr); err != nil {
				log.Printf("[TUI] Spectate server stopped: %v", err)
			}
		}()
		defer func() {
			cancel()
			<-hub.Done()
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableFocus()

	terminal := NewTerminal(screen, keys, sinks, publisher, farmConfig.Spectate.BroadcastEvery)
	terminal.Run()
}
