// Package middleware hertz 中间件：互动接口限流与链路追踪。
package middleware

import (
	"context"

	"VidHub.com/pkg/errno"
	"VidHub.com/pkg/utils"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 互动接口的限流资源名
const (
	ResourceVideoLike        = "video_like"
	ResourceVideoDislike     = "video_dislike"
	ResourceChannelSubscribe = "channel_subscribe"
	ResourceCommentLike      = "comment_like"
	ResourceCommentReply     = "comment_reply"
)

var EngagementResources = []string{
	ResourceVideoLike,
	ResourceVideoDislike,
	ResourceChannelSubscribe,
	ResourceCommentLike,
	ResourceCommentReply,
}

// InitSentinel 每个互动资源一条 QPS 规则，超出直接拒绝
func InitSentinel(qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	return LoadFlowRules(qps, EngagementResources...)
}

func LoadFlowRules(qps float64, resources ...string) error {
	rules := make([]*flow.Rule, 0, len(resources))
	for _, r := range resources {
		rules = append(rules, &flow.Rule{
			Resource:               r,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		})
	}
	if _, err := flow.LoadRules(rules); err != nil {
		return err
	}
	hlog.Infof("sentinel flow rules loaded: %v qps=%v", resources, qps)
	return nil
}

// Sentinel 被限流时返回 429
func Sentinel(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "request blocked by sentinel, resource: %s, reason: %s", resource, blockErr.BlockMsg())
			utils.SendResponse(c, errno.RateLimitErr, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
