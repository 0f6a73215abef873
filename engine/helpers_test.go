package engine

import (
	"xamlport/dom"
)

// stubRule satisfies Rule and TypedRule but no dispatch category; the
// concrete stubs below embed it.
type stubRule struct {
	name     string
	priority int
	typed    bool
}

func (r stubRule) Name() string         { return r.name }
func (r stubRule) Priority() int        { return r.priority }
func (r stubRule) NeedsTypedView() bool { return r.typed }

type elementStub struct {
	stubRule
	match func(*dom.Element) bool
	apply func(*Context, *dom.Element) (Result, error)
}

func (r elementStub) MatchElement(el *dom.Element) bool {
	return r.match == nil || r.match(el)
}

func (r elementStub) ApplyElement(ctx *Context, el *dom.Element) (Result, error) {
	if r.apply == nil {
		return Result{}, nil
	}

	return r.apply(ctx, el)
}

type propertyStub struct {
	stubRule
	match func(*dom.Element, *dom.Property) bool
	apply func(*Context, *dom.Element, *dom.Property) (Result, error)
}

func (r propertyStub) MatchProperty(el *dom.Element, prop *dom.Property) bool {
	return r.match == nil || r.match(el, prop)
}

func (r propertyStub) ApplyProperty(ctx *Context, el *dom.Element, prop *dom.Property) (Result, error) {
	if r.apply == nil {
		return Result{}, nil
	}

	return r.apply(ctx, el, prop)
}

type extensionStub struct {
	stubRule
	match func(*dom.Element, *dom.Property, *dom.MarkupExtension) bool
	apply func(*Context, *dom.Element, *dom.Property, *dom.MarkupExtension) (Result, error)
}

func (r extensionStub) MatchExtension(el *dom.Element, prop *dom.Property, ext *dom.MarkupExtension) bool {
	return r.match == nil || r.match(el, prop, ext)
}

func (r extensionStub) ApplyExtension(ctx *Context, el *dom.Element, prop *dom.Property, ext *dom.MarkupExtension) (Result, error) {
	if r.apply == nil {
		return Result{}, nil
	}

	return r.apply(ctx, el, prop, ext)
}

type restructureStub struct {
	stubRule
	match func(*dom.Element) bool
	apply func(*Context, *dom.Element) (Result, error)
}

func (r restructureStub) MatchContainer(el *dom.Element) bool {
	return r.match == nil || r.match(el)
}

func (r restructureStub) Restructure(ctx *Context, el *dom.Element) (Result, error) {
	if r.apply == nil {
		return Result{}, nil
	}

	return r.apply(ctx, el)
}

type cleanupStub struct {
	stubRule
	match func(*dom.Element) bool
	apply func(*Context, *dom.Element) (Result, error)
}

func (r cleanupStub) MatchCleanup(el *dom.Element) bool {
	return r.match == nil || r.match(el)
}

func (r cleanupStub) Cleanup(ctx *Context, el *dom.Element) (Result, error) {
	if r.apply == nil {
		return Result{}, nil
	}

	return r.apply(ctx, el)
}

// elementPropertyStub serves two categories at once.
type elementPropertyStub struct {
	elementStub
}

func (r elementPropertyStub) MatchProperty(*dom.Element, *dom.Property) bool {
	return true
}

func (r elementPropertyStub) ApplyProperty(*Context, *dom.Element, *dom.Property) (Result, error) {
	return Result{}, nil
}

func windowDoc() (*dom.Document, *dom.Element) {
	doc := dom.NewDocument("app.xaml")
	root := doc.NewElement("Window")
	doc.SetRoot(root)

	return doc, root
}
