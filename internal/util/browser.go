package util

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// browserCommands 按优先级返回打开 url 的候选命令
//
// Windows 优先 rundll32 调用 url.dll（Windows 7 上比 cmd /c start 稳定）；
// Linux 下 $BROWSER 优先于 xdg-open。
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		var cmds [][]string
		if b := os.Getenv("BROWSER"); b != "" {
			cmds = append(cmds, []string{b, url})
		}
		cmds = append(cmds, []string{"xdg-open", url})
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
}

// OpenBrowser 打开默认浏览器，依次尝试候选命令直到有一个能启动
func OpenBrowser(url string) error {
	var errs []error
	for _, argv := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(argv[0], argv[1:]...).Start()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
