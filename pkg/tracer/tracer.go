// Package tracer jaeger 链路追踪，初始化后作为全局 opentracing tracer。
package tracer

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type logger struct{}

func (logger) Error(msg string) {
	hlog.Errorf("[jaeger] %s", msg)
}

func (logger) Infof(msg string, args ...interface{}) {
	hlog.Debugf("[jaeger] "+msg, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger agentAddr 为空时使用 NoopTracer
func InitJaeger(service, agentAddr string, samplerParam float64) (opentracing.Tracer, io.Closer) {
	if agentAddr == "" {
		tracer := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(tracer)
		return tracer, nopCloser{}
	}

	cfg := &jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: samplerParam,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(logger{}))
	if err != nil {
		hlog.Warnf("could not initialize jaeger tracer: %v", err)
		tracer := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(tracer)
		return tracer, nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer initialized: %s -> %s", service, agentAddr)
	return tracer, closer
}
