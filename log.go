package catgcd

import "github.com/go-logr/logr"

// GlobalLog is the default logger to use if a task does not have one set.
// It defaults to a no-op logger
var GlobalLog logr.Logger

// TaskLogLevel is the verbosity level to log to when a task starts or exits
var TaskLogLevel = 5

// DebugLogLevel is the verbosity level to log to for internal debugging messages
var DebugLogLevel = 10
