package logger

import "fmt"

// Logger queues log lines for the UI's log page. Writers never block: when
// the buffer is full the oldest consumer wins and the line is dropped,
// because the log page is a diagnostic surface, not an audit trail.
type Logger struct {
	Prints chan string
}

func Init() *Logger {
	return &Logger{make(chan string, 100)}
}

func (l *Logger) Print(s string) {
	select {
	case l.Prints <- s:
	default:
	}
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	l.Printf("Error(%s) -> %s", source, err.Error())
}
