package anybox

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var pkgLogger atomic.Pointer[log.Logger]

func init() {
	pkgLogger.Store(log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "anybox",
		Level:  log.WarnLevel,
	}))
}

// SetLogger replaces the package logger. A nil logger discards everything.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	pkgLogger.Store(l)
}

func logger() *log.Logger {
	return pkgLogger.Load()
}
