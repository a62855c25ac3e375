package cpu

// Logger receives opcode-trace lines from Clock when tracing is enabled.
// A one-method sink is all a trace line needs, so callers can wire in
// anything from a plain stdout writer to a test-capturing buffer.
type Logger interface {
	Log(msg string)
}

type defaultLogger struct{}

func (defaultLogger) Log(msg string) {}

var (
	logger    Logger = defaultLogger{}
	logEnable bool
)

// SetLogger installs the package-wide trace sink.
func SetLogger(impl Logger) {
	if impl == nil {
		logger = defaultLogger{}
		return
	}
	logger = impl
}

// SetLogEnable toggles whether Clock emits a trace line per instruction.
func SetLogEnable(enable bool) {
	logEnable = enable
}
