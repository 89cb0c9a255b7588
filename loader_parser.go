package trialkit

import (
	internalLoader "github.com/goliatone/go-trialkit/internal/descriptor/loader"
	internalParser "github.com/goliatone/go-trialkit/internal/descriptor/parser"
	pkgdescriptor "github.com/goliatone/go-trialkit/pkg/descriptor"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgdescriptor.LoaderOption) pkgdescriptor.Loader {
	cfg := pkgdescriptor.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgdescriptor.ParserOption) pkgdescriptor.Parser {
	cfg := pkgdescriptor.NewParserOptions(options...)
	return internalParser.New(cfg)
}
