package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

const startPayloadPrefix = "get_"

// BuildStartPayload renders the /start argument that identifies a post.
func BuildStartPayload(postID int64) string {
	return startPayloadPrefix + strconv.FormatInt(postID, 10)
}

// BuildDeepLink renders the full t.me deep link for a post.
func BuildDeepLink(botUsername string, postID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, BuildStartPayload(postID))
}

// ParseStartPayload recovers a post id from a /start argument. Anything that
// is not a well-formed "get_<id>" payload reports false so the caller falls
// through to the default welcome rendering.
func ParseStartPayload(payload string) (int64, bool) {
	rest, ok := strings.CutPrefix(payload, startPayloadPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
