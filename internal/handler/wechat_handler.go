package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"undercover/backend/internal/messages"
	"undercover/backend/internal/wechat"
)

// WechatHandler serves the official account webhook.
type WechatHandler struct {
	replier Replier
	limiter Limiter
	token   string
	timeout time.Duration
	now     func() time.Time
}

// NewWechatHandler creates the webhook handler. limiter may be nil.
func NewWechatHandler(replier Replier, limiter Limiter, token string, timeout time.Duration) *WechatHandler {
	if replier == nil {
		panic("replier cannot be nil for WechatHandler")
	}
	return &WechatHandler{
		replier: replier,
		limiter: limiter,
		token:   token,
		timeout: timeout,
		now:     time.Now,
	}
}

func (h *WechatHandler) verified(c *gin.Context) bool {
	return wechat.VerifySignature(h.token, c.Query("signature"), c.Query("timestamp"), c.Query("nonce"))
}

// Verify godoc
// @Summary      Webhook URL verification
// @Description  Echoes echostr back when the signature matches the configured token.
// @Tags         wechat
// @Produce      plain
// @Param        signature query string true "Signature"
// @Param        timestamp query string true "Timestamp"
// @Param        nonce     query string true "Nonce"
// @Param        echostr   query string true "Echo string"
// @Success      200  {string}  string
// @Failure      403  {string}  string
// @Router       /wechat [get]
func (h *WechatHandler) Verify(c *gin.Context) {
	if !h.verified(c) {
		logrus.WithField("client_ip", c.ClientIP()).Warn("Webhook verification failed")
		c.String(http.StatusForbidden, "invalid signature")
		return
	}
	c.String(http.StatusOK, c.Query("echostr"))
}

// Receive godoc
// @Summary      Receive a platform message
// @Description  Routes a text message through the game and answers with a passive text reply.
// @Tags         wechat
// @Accept       xml
// @Produce      xml
// @Param        signature query string true "Signature"
// @Param        timestamp query string true "Timestamp"
// @Param        nonce     query string true "Nonce"
// @Success      200  {object}  wechat.TextReply
// @Failure      400  {string}  string
// @Failure      403  {string}  string
// @Router       /wechat [post]
func (h *WechatHandler) Receive(c *gin.Context) {
	if !h.verified(c) {
		logrus.WithField("client_ip", c.ClientIP()).Warn("Webhook message with bad signature")
		c.String(http.StatusForbidden, "invalid signature")
		return
	}

	var msg wechat.InboundMessage
	if err := c.ShouldBindXML(&msg); err != nil {
		c.String(http.StatusBadRequest, "invalid message")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": msg.FromUserName, "msg_type": msg.MsgType})

	var reply string
	switch msg.MsgType {
	case wechat.MsgTypeText:
		if h.limiter != nil && !h.limiter.Allow(msg.FromUserName) {
			logCtx.Debug("Player rate limited")
			reply = messages.RateLimited
			break
		}
		ctx, cancel := withTimeout(c, h.timeout)
		reply = h.replier.Handle(ctx, msg.FromUserName, msg.Content)
		cancel()
	case wechat.MsgTypeEvent:
		if msg.Event == wechat.EventSubscribe {
			reply = messages.Welcome
		} else {
			reply = messages.Instructions
		}
	default:
		reply = messages.Instructions
	}

	logCtx.Debug("Webhook message handled")
	c.XML(http.StatusOK, wechat.NewTextReply(&msg, reply, h.now()))
}
