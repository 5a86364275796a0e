// Package flash implements one-shot user notifications carried in a signed
// cookie: set on a redirect, shown once by the next rendered page, then
// cleared. The cookie is HMAC-signed with the configured secret so a client
// cannot forge or alter messages.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// Levels map to the stylesheet's notice classes.
const (
	LevelSuccess = "success"
	LevelDanger  = "danger"
	LevelInfo    = "info"
)

// Message is a single transient notification.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Codec signs and verifies flash cookies.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec keyed by the session-signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Set attaches a flash message to the response.
func (c *Codec) Set(ctx *gin.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	value := encoded + "." + c.sign(encoded)
	ctx.SetCookie(cookieName, value, 60, "/", "", false, true)
}

// Pop reads, verifies, and clears the flash message, if any. Malformed or
// tampered cookies are dropped silently.
func (c *Codec) Pop(ctx *gin.Context) (Message, bool) {
	value, err := ctx.Cookie(cookieName)
	if err != nil || value == "" {
		return Message{}, false
	}
	// Clear regardless of validity: flash messages are one-shot.
	ctx.SetCookie(cookieName, "", -1, "/", "", false, true)

	encoded, signature, found := strings.Cut(value, ".")
	if !found || !hmac.Equal([]byte(c.sign(encoded)), []byte(signature)) {
		return Message{}, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Message{}, false
	}
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}

func (c *Codec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}

// Success is shorthand for a success-level message.
func (c *Codec) Success(ctx *gin.Context, text string) {
	c.Set(ctx, Message{Level: LevelSuccess, Text: text})
}

// Error is shorthand for a danger-level message.
func (c *Codec) Error(ctx *gin.Context, text string) {
	c.Set(ctx, Message{Level: LevelDanger, Text: text})
}

// Info is shorthand for an info-level message.
func (c *Codec) Info(ctx *gin.Context, text string) {
	c.Set(ctx, Message{Level: LevelInfo, Text: text})
}
