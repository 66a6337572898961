package log

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kataras/pio"
)

type Level uint32

const (
	DisableLevel Level = iota
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

var printer = pio.NewPrinter("", os.Stdout).EnableDirectOutput().SetSync(true)

var level = uint32(InfoLevel)

// SetLevel sets the minimum reported level by name.
// Unknown names fall back to "info".
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "disable", "off":
		atomic.StoreUint32(&level, uint32(DisableLevel))
	case "error":
		atomic.StoreUint32(&level, uint32(ErrorLevel))
	case "warn", "warning":
		atomic.StoreUint32(&level, uint32(WarnLevel))
	case "debug":
		atomic.StoreUint32(&level, uint32(DebugLevel))
	default:
		atomic.StoreUint32(&level, uint32(InfoLevel))
	}
}

func Debug(v ...interface{}) {
	print(DebugLevel, pio.Cyan, "DBUG", v...)
}

func Info(v ...interface{}) {
	print(InfoLevel, pio.Green, "INFO", v...)
}

func Warn(v ...interface{}) {
	print(WarnLevel, pio.Yellow, "WARN", v...)
}

func Error(v ...interface{}) {
	print(ErrorLevel, pio.Red, "ERRO", v...)
}

func print(l Level, color int, tag string, v ...interface{}) {
	if uint32(l) > atomic.LoadUint32(&level) {
		return
	}
	prefix := fmt.Sprintf("[%s] %s ", pio.Rich(tag, color), time.Now().Format("2006/01/02 15:04:05"))
	printer.Println(prefix + fmt.Sprint(v...))
}
