package benchplot

import (
	"github.com/sirupsen/logrus"
)

// Logger receives the data-quality warnings of this package: schema
// mismatches during merges, missing lookup keys, dropped groups and
// skipped benchmark lines. Replace it to silence or redirect them.
var Logger logrus.FieldLogger = logrus.StandardLogger()

func warnf(fields logrus.Fields, format string, args ...interface{}) {
	Logger.WithFields(fields).Warnf(format, args...)
}

func debugf(fields logrus.Fields, format string, args ...interface{}) {
	Logger.WithFields(fields).Debugf(format, args...)
}
