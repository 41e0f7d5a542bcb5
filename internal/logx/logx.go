package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

// Level is a log severity. Lines below a logger's minimum are dropped.
type Level int

// Severities in increasing order. LevelCount is not a level.
const (
	DEBUG Level = iota
	INFO
	NOTICE
	WARN
	ERROR
	CRITICAL
	LevelCount
)

var levelNames = [LevelCount]string{"debug", "info", "notice", "warn", "error", "critical"}

// String returns the lower-case level name.
func (l Level) String() string {
	if l >= 0 && l < LevelCount {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts the lower-case level names, plus "warning".
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WARN, nil
	}
	for i, n := range levelNames {
		if n == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ColorMode says when level tags are colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

// ParseColorMode accepts auto, on/always and off/never. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	}
	return 0, fmt.Errorf("unknown color mode %q", s)
}

var levelTags = [2][LevelCount]string{
	// uncolored
	{
		DEBUG:    "   DEBUG",
		INFO:     "    INFO",
		NOTICE:   "  NOTICE",
		WARN:     " WARNING",
		ERROR:    "   ERROR",
		CRITICAL: "CRITICAL",
	},
	// colored
	{
		DEBUG:    "\033[37m   DEBUG\033[0m",
		INFO:     "\033[34m    INFO\033[0m",
		NOTICE:   "\033[32m  NOTICE\033[0m",
		WARN:     "\033[33m WARNING\033[0m",
		ERROR:    "\033[31m   ERROR\033[0m",
		CRITICAL: "\033[35mCRITICAL\033[0m",
	},
}

var sectionFormats = [2]string{
	" %s [%s] ",
	" %s [\033[36m%s\033[0m] ",
}

// sink is shared by a logger and all of its sections.
type sink struct {
	mu    sync.Mutex
	w     io.Writer
	color int
	now   func() time.Time
}

// Logger writes leveled lines tagged with a section name.
type Logger struct {
	s       *sink
	min     Level
	section string
}

// New returns a logger writing to f. With ColorAuto, colors are used only
// when f is a terminal.
func New(f *os.File, min Level, mode ColorMode) *Logger {
	s := &sink{w: f, now: time.Now}
	fd := f.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if mode == ColorOn || (mode == ColorAuto && tty) {
		s.w = colorable.NewColorable(f)
		s.color = 1
	}
	return &Logger{s: s, min: min, section: "main"}
}

// NewWriter returns an uncolored logger writing to w.
func NewWriter(w io.Writer, min Level) *Logger {
	return &Logger{s: &sink{w: w, now: time.Now}, min: min, section: "main"}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, LevelCount)
}

// Section returns a logger sharing l's output with a different section tag.
func (l *Logger) Section(name string) *Logger {
	return &Logger{s: l.s, min: l.min, section: name}
}

// Level returns the minimum level l writes.
func (l *Logger) Level() Level {
	return l.min
}

// Enabled reports whether lines at lvl are written.
func (l *Logger) Enabled(lvl Level) bool {
	return lvl >= l.min
}

// Printf writes one line at lvl, prefixed with time, tag and section.
func (l *Logger) Printf(lvl Level, format string, v ...interface{}) {
	if !l.Enabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, v...)

	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	tag := levelTags[l.s.color][lvl]
	fmt.Fprintf(l.s.w, "%s"+sectionFormats[l.s.color], l.s.now().Format("15:04:05"), tag, l.section)
	io.WriteString(l.s.w, msg)
	if !strings.HasSuffix(msg, "\n") {
		io.WriteString(l.s.w, "\n")
	}
}

// Shorthands for Printf at a fixed level.
func (l *Logger) Debugf(format string, v ...interface{}) { l.Printf(DEBUG, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.Printf(INFO, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.Printf(WARN, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.Printf(ERROR, format, v...) }

// Fatalf logs at CRITICAL and exits with status 1.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.Printf(CRITICAL, format, v...)
	os.Exit(1)
}
