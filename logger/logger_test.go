package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantErr    bool
	}{
		{
			name:       "JSON output mode",
			jsonOutput: true,
			verbosity:  VerbosityInfo,
			wantErr:    false,
		},
		{
			name:       "Console output mode",
			jsonOutput: false,
			verbosity:  VerbosityInfo,
			wantErr:    false,
		},
		{
			name:       "Console quiet",
			jsonOutput: false,
			verbosity:  VerbosityUser,
			wantErr:    false,
		},
		{
			name:       "Console trace",
			jsonOutput: false,
			verbosity:  VerbosityTrace,
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset global logger
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.verbosity)
			if (err != nil) != tt.wantErr {
				t.Errorf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if Logger == nil {
					t.Error("Initialize() did not set global Logger")
				}
				if JSONOutput != tt.jsonOutput {
					t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
				}
			}

			// Cleanup
			if Logger != nil {
				Logger.Sync()
				Logger = nil
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{VerbosityAll, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	if !ShouldOutput(VerbosityUser, OutputResults) {
		t.Error("results must always be shown")
	}
	if ShouldOutput(VerbosityUser, OutputStageResults) {
		t.Error("stage results should need -vv")
	}
	if !ShouldOutput(VerbosityDebug, OutputStageResults) {
		t.Error("stage results should show at -vv")
	}
	if ShouldOutput(VerbosityTrace, OutputWorkspaceDump) {
		t.Error("workspace dumps should need -vvvv")
	}
	if !ShouldOutput(VerbosityAll, OutputWorkspaceDump) {
		t.Error("workspace dumps should show at -vvvv")
	}
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	if fields := FieldsFromContext(ctx); len(fields) != 0 {
		t.Errorf("empty context produced fields: %v", fields)
	}

	ctx = WithChartID(ctx, "z4kq8")
	ctx = WithComponent(ctx, "chart.engine")
	fields := FieldsFromContext(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 field elements, got %d: %v", len(fields), fields)
	}
	if fields[0] != FieldChartID || fields[1] != "z4kq8" {
		t.Errorf("chart id not first: %v", fields)
	}
	if fields[2] != FieldComponent || fields[3] != "chart.engine" {
		t.Errorf("component missing: %v", fields)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name        string
		setupLogger bool
	}{
		{
			name:        "Cleanup with initialized logger",
			setupLogger: true,
		},
		{
			name:        "Cleanup with nil logger (should not panic)",
			setupLogger: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupLogger {
				config := zap.NewDevelopmentConfig()
				zapLogger, err := config.Build()
				if err != nil {
					t.Fatalf("Failed to create test logger: %v", err)
				}
				Logger = zapLogger.Sugar()
			} else {
				Logger = nil
			}

			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Cleanup() panicked unexpectedly: %v", r)
				}
			}()

			Cleanup()

			if tt.setupLogger && Logger == nil {
				t.Error("Cleanup() should not nil out the logger")
			}

			Logger = nil
		})
	}
}

// newTestLogger creates a logger for testing without modifying global state
func newTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		t.Fatalf("Failed to create test logger: %v", err)
	}

	return zapLogger.Sugar()
}

// TestLoggingFunctions tests the package-level logging functions
func TestLoggingFunctions(t *testing.T) {
	Logger = newTestLogger(t)
	defer func() {
		if Logger != nil {
			Logger.Sync()
			Logger = nil
		}
	}()

	t.Run("Info functions", func(t *testing.T) {
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
	})

	t.Run("Error functions", func(t *testing.T) {
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
	})

	t.Run("Warn functions", func(t *testing.T) {
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
	})

	t.Run("Debug functions", func(t *testing.T) {
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
	})

	t.Run("Stage helpers", func(t *testing.T) {
		StageDebugw("ziwei", "anchor fixed", FieldBranch, "辰")
		StageErrorw("bureau", "row missing", FieldStem, "庚")
	})

	t.Run("With nil logger (should not panic)", func(t *testing.T) {
		Logger = nil

		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Error("test")
		Errorf("test %s", "format")
		Errorw("test", "key", "value")
		Warn("test")
		Warnf("test %s", "format")
		Warnw("test", "key", "value")
		Debug("test")
		Debugf("test %s", "format")
		Debugw("test", "key", "value")
		StageDebugw("ziwei", "anchor fixed")
		StageErrorw("bureau", "row missing")
	})
}

// BenchmarkInfow benchmarks structured Info logging
func BenchmarkInfow(b *testing.B) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	zapLogger, err := config.Build()
	if err != nil {
		b.Fatalf("Failed to create benchmark logger: %v", err)
	}
	Logger = zapLogger.Sugar()
	defer func() {
		Logger.Sync()
		Logger = nil
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Infow("test message", "iteration", i, "key", "value")
	}
}

// BenchmarkEncodeEntry benchmarks the minimal console encoder
func BenchmarkEncodeEntry(b *testing.B) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.InfoLevel,
		LoggerName: "chart.engine",
		Message:    "star placed [stage:primary]",
	}
	fields := []zapcore.Field{
		zap.String(FieldChartID, "z4kq8"),
		zap.String(FieldStar, "紫微"),
		zap.Int(FieldCount, 14),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, err := encoder.EncodeEntry(entry, fields)
		if err != nil {
			b.Fatal(err)
		}
		buf.Free()
	}
}
