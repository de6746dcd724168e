package usecase

import (
	"regexp"
	"strings"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
)

// Channel requirement lines arrive from admins in mixed formats:
//
//	My Channel | @mychan
//	@mychan
//	https://t.me/mychan
//	News Feed - t.me/newsfeed
//	Some Name | mychan
//	mychan
//
// A single line reading "none" (any case) clears the whole list.

var (
	handleTokenRe  = regexp.MustCompile(`@([A-Za-z0-9_]+)`)
	tmeLinkRe      = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?t\.me/([A-Za-z0-9_]+)`)
	bareURLRe      = regexp.MustCompile(`(?i)https?://\S+`)
	trailingWordRe = regexp.MustCompile(`([A-Za-z0-9_]+)\s*$`)
	separatorRe    = regexp.MustCompile(`[|\-:,]+`)
)

// ParseChannelRequirements turns free-form admin text into a normalized list
// of required channels, one per non-blank line. Order and duplicates are
// preserved. Handles are returned without the leading "@".
func ParseChannelRequirements(text string) []model.RequiredChannel {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), "none") {
			return nil
		}
	}

	var out []model.RequiredChannel
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, parseRequirementLine(line))
	}
	return out
}

func parseRequirementLine(line string) model.RequiredChannel {
	// "@handle" anywhere on the line.
	if m := handleTokenRe.FindStringSubmatch(line); m != nil {
		return model.RequiredChannel{Name: displayName(line, m[1]), Handle: m[1]}
	}

	// "t.me/handle" or a full URL form without "@".
	if m := tmeLinkRe.FindStringSubmatch(line); m != nil {
		return model.RequiredChannel{Name: displayName(line, m[1]), Handle: m[1]}
	}

	// "name | address" with no recognized handle: take the trailing token of
	// the address part.
	if i := strings.Index(line, "|"); i >= 0 {
		name := strings.TrimSpace(line[:i])
		addr := strings.TrimSpace(line[i+1:])
		if m := trailingWordRe.FindStringSubmatch(addr); m != nil {
			if name == "" {
				name = m[1]
			}
			return model.RequiredChannel{Name: name, Handle: m[1]}
		}
	}

	// Fallback: the whole line is both name and handle.
	bare := strings.TrimPrefix(line, "@")
	return model.RequiredChannel{Name: bare, Handle: bare}
}

// displayName strips the handle token and any link syntax from the line,
// collapses separator characters to spaces, and falls back to the handle when
// nothing readable remains.
func displayName(line, handle string) string {
	s := tmeLinkRe.ReplaceAllString(line, " ")
	s = handleTokenRe.ReplaceAllString(s, " ")
	s = bareURLRe.ReplaceAllString(s, " ")
	s = separatorRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return handle
	}
	return s
}
