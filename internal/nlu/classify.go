package nlu

import "strings"

// exitPhrases terminate the session when the utterance matches exactly.
var exitPhrases = []string{
	"exit", "quit", "stop", "exit assistant", "close assistant",
	"quit assistant", "stop assistant", "shut down", "shutdown",
}

// exitPrefixes terminate the session when the utterance starts with one of
// them, so trailing words ("close assistant please") still count.
var exitPrefixes = []string{"exit assistant", "close assistant", "quit assistant"}

// Classifier turns normalized utterances into commands. Rules run in a
// fixed order and the first hit wins; everything left over is a general
// query. The close rule runs before the exit rule so "close chrome" never
// gets mistaken for "close assistant".
type Classifier struct {
	res   *Resolver
	rules []func(string) (Command, bool)
}

func NewClassifier(res *Resolver) *Classifier {
	c := &Classifier{res: res}
	c.rules = []func(string) (Command, bool){
		c.closeRule,
		c.exitRule,
		c.openRule,
		c.deleteRule,
	}
	return c
}

// Classify is total: every input maps to exactly one command.
func (c *Classifier) Classify(text string) Command {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, rule := range c.rules {
		if cmd, ok := rule(text); ok {
			return cmd
		}
	}
	return Command{Kind: KindGeneral, Arg: text}
}

// closeRule resolves "close <something>" against the app aliases. When the
// remainder resolves to no alias it falls through, leaving phrases like
// "close assistant" for the exit rule.
func (c *Classifier) closeRule(text string) (Command, bool) {
	rest, ok := strings.CutPrefix(text, "close")
	if !ok {
		return Command{}, false
	}

	target := dropWords(rest, "the", "app", "application")
	name, ok := c.res.App(target)
	if !ok {
		return Command{}, false
	}
	return Command{Kind: KindCloseApp, Arg: name}, true
}

func (c *Classifier) exitRule(text string) (Command, bool) {
	for _, phrase := range exitPhrases {
		if text == phrase {
			return Command{Kind: KindExit}, true
		}
	}
	for _, prefix := range exitPrefixes {
		if strings.HasPrefix(text, prefix) {
			return Command{Kind: KindExit}, true
		}
	}
	return Command{}, false
}

// openRule tries apps first and falls back to a folder, so "open chrome"
// launches a browser while "open downloads" opens a directory.
func (c *Classifier) openRule(text string) (Command, bool) {
	rest, ok := strings.CutPrefix(text, "open")
	if !ok {
		return Command{}, false
	}

	target := dropWords(rest, "folder", "the", "app", "application")
	if name, ok := c.res.App(target); ok {
		return Command{Kind: KindOpenApp, Arg: name}, true
	}
	return Command{Kind: KindOpenFolder, Arg: target}, true
}

func (c *Classifier) deleteRule(text string) (Command, bool) {
	rest, ok := strings.CutPrefix(text, "delete")
	if !ok {
		return Command{}, false
	}

	return Command{Kind: KindDeleteFile, Arg: dropWords(rest, "file")}, true
}

// dropWords removes whole filler tokens and squeezes the remaining fields
// back together with single spaces.
func dropWords(s string, words ...string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		drop := false
		for _, w := range words {
			if f == w {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
