package wechat

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"encoding/xml"
	"sort"
	"strings"
	"time"
)

// Message types and events handled by the webhook.
const (
	MsgTypeText  = "text"
	MsgTypeEvent = "event"

	EventSubscribe = "subscribe"
)

// Signature computes the webhook signature: the hex SHA-1 of token,
// timestamp and nonce sorted and concatenated.
func Signature(token, timestamp, nonce string) string {
	parts := []string{token, timestamp, nonce}
	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:])
}

// VerifySignature reports whether signature matches the request parameters.
// An empty token never verifies.
func VerifySignature(token, signature, timestamp, nonce string) bool {
	if token == "" || signature == "" {
		return false
	}
	want := Signature(token, timestamp, nonce)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(signature))) == 1
}

// InboundMessage is the plaintext envelope pushed to the webhook.
type InboundMessage struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   string   `xml:"ToUserName"`
	FromUserName string   `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      string   `xml:"MsgType"`
	Content      string   `xml:"Content"`
	Event        string   `xml:"Event"`
	MsgID        int64    `xml:"MsgId"`
}

// CDATA marshals its value as a CDATA section.
type CDATA struct {
	Value string `xml:",cdata"`
}

// TextReply is the passive text reply envelope.
type TextReply struct {
	XMLName      xml.Name `xml:"xml"`
	ToUserName   CDATA    `xml:"ToUserName"`
	FromUserName CDATA    `xml:"FromUserName"`
	CreateTime   int64    `xml:"CreateTime"`
	MsgType      CDATA    `xml:"MsgType"`
	Content      CDATA    `xml:"Content"`
}

// NewTextReply answers msg with content, swapping sender and recipient.
func NewTextReply(msg *InboundMessage, content string, now time.Time) *TextReply {
	return &TextReply{
		ToUserName:   CDATA{msg.FromUserName},
		FromUserName: CDATA{msg.ToUserName},
		CreateTime:   now.Unix(),
		MsgType:      CDATA{MsgTypeText},
		Content:      CDATA{content},
	}
}
