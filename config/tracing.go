package config

import (
	"github.com/zsiec/pkg/tracing"
	"github.com/zsiec/pkg/xrayutil"
)

// Tracing selects the tracer wrapped around the HTTP handler and every
// MediaConvert call.
type Tracing struct {
	EnableXray       bool `envconfig:"ENABLE_XRAY"`
	EnableAWSPlugins bool `envconfig:"ENABLE_XRAY_AWS_PLUGINS"`
}

// Tracer returns an X-Ray tracer when enabled, otherwise a no-op. The caller
// runs Init before use.
func (c Tracing) Tracer(logf func(string, ...interface{})) tracing.Tracer {
	if !c.EnableXray {
		return tracing.NoopTracer{}
	}
	return xrayutil.XrayTracer{
		EnableAWSPlugins: c.EnableAWSPlugins,
		InfoLogFn:        logf,
	}
}
