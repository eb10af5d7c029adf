// Package common provides the configuration structures and the logging setup shared
// by the benchmark harness and the command line interface.
//
// The package focuses on:
//   - Configuration structures for the codec and benchmark commands
//   - Validation that reports every configuration problem at once
//   - Custom logging implementation integrated with Dragonboat's logger registry
//
// Key Components:
//
//   - CodecConfig: Parameters of the encode and decode commands (serializer, pod depth
//     limit, validation on encode, log level).
//
//   - BenchConfig: Parameters of a benchmark run, including the shape of the generated
//     content, the modes to run and the CSV output. BenchModes lists the valid modes.
//
//   - Logger: The packages obtain their logger with logger.GetLogger from
//     github.com/lni/dragonboat/v4/logger. InitLoggers installs a factory whose loggers
//     write through zerolog to stderr, tagged with the package name.
//
// Usage:
//
//	if err := conf.Validate(serializer.Names()); err != nil {
//	    // err is an errsx.Map keyed by the offending flag
//	}
//	if err := common.InitLoggers(conf.LogLevel); err != nil {
//	    // ...
//	}
package common
