package debuglogger

func (l *Logger) debug(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.Print(v...)
	}
}

func (l *Logger) debugf(level uint8, format string, v ...interface{}) {
	if l.level >= int16(level) {
		l.Printf(format, v...)
	}
}

func (l *Logger) debugln(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.Println(v...)
	}
}
