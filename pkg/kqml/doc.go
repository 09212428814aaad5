/*
Package kqml reads and writes the parenthesised performative expressions
spoken on the agent message bus.

It covers the subset the bridge needs: lists, symbols (including :keywords),
and double-quoted strings. Strings escape a double quote, a backslash and a
newline, so an encoded expression never contains a raw newline and can be
framed one per line.

	p, err := kqml.DefaultCodec.Parse(`(tell :content (spoken :what "hi"))`)
	content, _ := p.Content()
	what, _ := content.GetString("what")

Values are immutable: With returns a new List or Performative and never
mutates the receiver.
*/
package kqml
