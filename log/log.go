package log

import (
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	Trace   = log.New(ioutil.Discard, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info    = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warning = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error   = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

func Init(
	traceHandle io.Writer,
	infoHandle io.Writer,
	warningHandle io.Writer,
	errorHandle io.Writer) {

	Trace = log.New(traceHandle, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(infoHandle, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warning = log.New(warningHandle, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(errorHandle, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLog wires the loggers to stdout/stderr. Trace output is only
// enabled when DIGITPAD_TRACE=1.
func InitLog() {
	var trace io.Writer = ioutil.Discard
	if os.Getenv("DIGITPAD_TRACE") == "1" {
		trace = os.Stdout
	}

	Init(trace, os.Stdout, os.Stdout, os.Stderr)
}
