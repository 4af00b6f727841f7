package engine

import (
	"os"

	"github.com/op/go-logging"
)

// log is the package-wide named logger. Call ConfigureLogging once at
// process start to attach a backend; until then it writes to stderr
// at the default level.
var log = logging.MustGetLogger("engine")

// logFormat matches the timestamp/level/message layout used across the
// corpus's go-logging setups.
const logFormat = `%{time:2006-01-02 15:04:05.000} %{level:.4s} %{shortfunc} ▶ %{message}`

// ConfigureLogging attaches a leveled stderr backend to the engine
// logger. level is one of go-logging's names ("CRITICAL", "ERROR",
// "WARNING", "NOTICE", "INFO", "DEBUG"); an unrecognized name falls
// back to INFO.
func ConfigureLogging(level string) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(logFormat)
	backendFormatter := logging.NewBackendFormatter(backend, formatter)

	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	leveled := logging.AddModuleLevel(backendFormatter)
	leveled.SetLevel(lvl, "")

	logging.SetBackend(leveled)
}
