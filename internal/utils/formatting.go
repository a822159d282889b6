package utils

import "strings"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"|", `\|`,
	">", `\>`,
	"[", `\[`,
	"]", `\]`,
)

// Escape neutralizes markdown in text typed by participants.
func Escape(text string) string {
	return markdownEscaper.Replace(text)
}

func H3(text string) string {
	return "### " + text
}

func Bold(text string) string {
	return "**" + text + "**"
}

// InlineCode cannot hold a backtick, so those are dropped.
func InlineCode(text string) string {
	return "`" + strings.ReplaceAll(text, "`", "") + "`"
}

func Link(text, url string) string {
	return "[" + text + "](" + url + ")"
}
