package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/payroll-admin-api/pkg/config"
	"github.com/noah-isme/payroll-admin-api/pkg/middleware/requestid"
)

// New builds the process logger from the Log section of the config.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == config.EnvProduction {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.Log.Format == "console" {
		zapCfg.Encoding = "console"
	} else {
		zapCfg.Encoding = "json"
	}
	if cfg.Log.Level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// quiet paths are probed constantly by orchestrators and scrapers.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/ready":   {},
	"/metrics": {},
}

// GinMiddleware logs one line per request, at error level for server
// failures. Health and scrape probes are skipped to keep logs useful.
func GinMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if _, quiet := quietPaths[path]; quiet && c.Writer.Status() < http.StatusInternalServerError {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if reqID := requestid.Value(c); reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			l.Error("http_request", fields...)
			return
		}
		l.Info("http_request", fields...)
	}
}
