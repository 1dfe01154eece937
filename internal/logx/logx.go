// Package logx builds the structured logger FIGARO threads through the
// pipeline. It follows the same shape as other_examples' pandora QualityChecker,
// which wires a *zap.Logger through its FASTQ analysis types, and keeps the
// teacher's colored terminal summary (github.com/fatih/color) for the final
// human-readable run report.
package logx

import (
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that writes to stderr at console level and, when
// logFile is non-empty, additionally appends to logFile. zap has no
// CRITICAL level distinct from ERROR; critical conditions (spec §7) are
// logged at zap.ErrorLevel with an extra "critical" field instead.
func New(logFile string, level zapcore.Level) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		jsonEncoder := zapcore.NewJSONEncoder(encoderCfg)
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(f), level))
	}

	core := zapcore.NewTee(cores...)
	return zap.New(core), nil
}

// Critical logs msg at error level tagged as a critical failure, matching the
// original implementation's logger.critical calls that precede a hard abort.
func Critical(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Error(msg, append(fields, zap.Bool("critical", true))...)
}

// Summary prints a colored human-readable run report in the style of the
// teacher's ProcessReadsFast: the given read count and the best-pair
// retention percentage. It prints no per-reason rejection counts.
func Summary(totalReads int64, bestRetentionPercent float64) {
	color.HiGreen("Reads inspected: %s\n", Comma(totalReads))
	color.HiGreen("Best-pair retention: %.2f%%\n", bestRetentionPercent)
}

// Comma formats an int64 with thousands separators, carried verbatim in
// behavior from the teacher's Comma helper.
func Comma(value int64) string {
	negative := value < 0
	if negative {
		value = -value
	}
	digits := []byte{}
	for value > 0 || len(digits) == 0 {
		digits = append(digits, byte('0'+value%10))
		value /= 10
	}
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
		remaining := i
		if remaining > 0 && remaining%3 == 0 {
			out = append(out, ',')
		}
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
