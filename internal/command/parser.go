// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatMUD Contributors

package command

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

// ParsedCommand represents a parsed command input.
type ParsedCommand struct {
	Name string // command name (first whitespace-delimited token, lowercased)
	Args Args   // lexed argument tokens
	Rest string // unparsed argument string (preserves internal whitespace)
	Raw  string // original input
}

// ArgKind distinguishes argument token types.
type ArgKind int

// Argument token kinds.
const (
	ArgWord ArgKind = iota
	ArgChannel
)

// Arg is one argument token. Channel references carry the channel ID when
// the client expanded them (`<#C123|name>`); bare `#name` references carry
// only the name.
type Arg struct {
	Kind        ArgKind
	Text        string // word text, or channel display name
	ChannelID   string // set only for expanded channel references
}

// Args is the lexed argument list.
type Args []Arg

// Words returns the plain-word tokens in order.
func (a Args) Words() []string {
	var words []string
	for _, arg := range a {
		if arg.Kind == ArgWord {
			words = append(words, arg.Text)
		}
	}
	return words
}

// FirstChannel returns the first channel reference, or nil.
func (a Args) FirstChannel() *Arg {
	for i := range a {
		if a[i].Kind == ArgChannel {
			return &a[i]
		}
	}
	return nil
}

// argLexer tokenizes command arguments. Channel mentions arrive either
// client-expanded (`<#C0123ABCD|library>`) or as bare `#library` references.
var argLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "ChannelRef", Pattern: `<#[A-Z0-9]+\|[^>]*>`},
	{Name: "HashRef", Pattern: `#[^\s<>]+`},
	{Name: "Word", Pattern: `[^\s<>#]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

type argTokenAST struct {
	ChannelRef *string `parser:"  @ChannelRef"`
	HashRef    *string `parser:"| @HashRef"`
	Word       *string `parser:"| @Word"`
}

type argListAST struct {
	Tokens []argTokenAST `parser:"@@*"`
}

var argParser = participle.MustBuild[argListAST](
	participle.Lexer(argLexer),
)

// ParseArgs lexes an argument string into tokens.
func ParseArgs(rest string) (Args, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}
	ast, err := argParser.ParseString("", rest)
	if err != nil {
		return nil, oops.Code(CodeInvalidArgs).With("input", rest).Wrap(err)
	}

	args := make(Args, 0, len(ast.Tokens))
	for _, tok := range ast.Tokens {
		switch {
		case tok.ChannelRef != nil:
			// <#C0123ABCD|library> -> ID C0123ABCD, name library
			inner := strings.TrimSuffix(strings.TrimPrefix(*tok.ChannelRef, "<#"), ">")
			id, name, _ := strings.Cut(inner, "|")
			args = append(args, Arg{Kind: ArgChannel, Text: name, ChannelID: id})
		case tok.HashRef != nil:
			args = append(args, Arg{Kind: ArgChannel, Text: strings.TrimPrefix(*tok.HashRef, "#")})
		case tok.Word != nil:
			args = append(args, Arg{Kind: ArgWord, Text: *tok.Word})
		}
	}
	return args, nil
}

// Parse splits raw input into command name and lexed arguments.
// The command name is lowercased; argument words keep their case.
func Parse(input string) (*ParsedCommand, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, oops.Code(CodeEmptyInput).Errorf("no command provided")
	}

	name := trimmed
	rest := ""
	if idx := strings.IndexAny(trimmed, " \t"); idx != -1 {
		name = trimmed[:idx]
		rest = strings.TrimLeft(trimmed[idx+1:], " \t")
	}

	args, err := ParseArgs(rest)
	if err != nil {
		return nil, err
	}

	return &ParsedCommand{
		Name: strings.ToLower(name),
		Args: args,
		Rest: rest,
		Raw:  input,
	}, nil
}
