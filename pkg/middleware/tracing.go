package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// headerCarrier 从 hertz 请求头中读取上游 span
func headerCarrier(c *app.RequestContext) opentracing.HTTPHeadersCarrier {
	h := http.Header{}
	c.Request.Header.VisitAll(func(k, v []byte) {
		h.Add(string(k), string(v))
	})
	return opentracing.HTTPHeadersCarrier(h)
}

// ServerSpan 每个请求一个 server span，后续 gorm/存储调用可以从 ctx 取到
func ServerSpan(tracer opentracing.Tracer) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		opts := []opentracing.StartSpanOption{ext.SpanKindRPCServer}
		if parent, err := tracer.Extract(opentracing.HTTPHeaders, headerCarrier(c)); err == nil {
			opts = append(opts, opentracing.ChildOf(parent))
		}

		span := tracer.StartSpan(string(c.Method())+" "+c.FullPath(), opts...)
		defer span.Finish()
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}
