package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It is usable before Init with logrus defaults.
var Logger = logrus.New()

var once sync.Once

// Init configures Logger once. An empty file logs JSON to stdout; otherwise
// output goes to a rotated file.
func Init(level, file string) error {
	var err error
	once.Do(func() {
		lvl, parseErr := logrus.ParseLevel(level)
		if parseErr != nil {
			err = parseErr
			return
		}
		Logger.SetLevel(lvl)
		Logger.SetFormatter(&logrus.JSONFormatter{})

		if file == "" {
			Logger.SetOutput(os.Stdout)
			return
		}

		Logger.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
		Logger.WithField("file", file).Info("logger initialized")
	})
	return err
}
