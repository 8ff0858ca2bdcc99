package logging

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
)

// Debug controls whether debug logs are printed.
var Debug bool

// Setup installs the text handler on w (stderr when nil) and sets the level from debug.
func Setup(w io.Writer, debug bool) {
	if w == nil {
		w = os.Stderr
	}
	Debug = debug
	log.SetHandler(text.New(w))
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// Debugf logs a formatted debug message when Debug is enabled.
func Debugf(format string, v ...any) {
	if Debug {
		log.Debugf(format, v...)
	}
}

// Session returns an entry tagged with a session kind and id.
func Session(kind, id string) *log.Entry {
	return log.WithFields(log.Fields{"kind": kind, "id": id})
}
