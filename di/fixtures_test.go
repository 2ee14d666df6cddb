package di

import (
	stderrors "errors"
	"strings"
)

// Capabilities used across the resolver tests.
type (
	Greeter interface{ Greet() string }
	Store   interface{ Name() string }
	Service interface{ Store() Store }
	Handler interface{ Service() Service }
	Ping    interface{ ping() }
	Pong    interface{ pong() }
)

type englishGreeter struct{ Component }

func (*englishGreeter) Greet() string { return "hello" }

// valueGreeter is bound by value rather than by pointer.
type valueGreeter struct {
	Component
	Prefix string
}

func (g valueGreeter) Greet() string { return g.Prefix + "hi" }

// plainGreeter satisfies Greeter but lacks the component marker.
type plainGreeter struct{}

func (*plainGreeter) Greet() string { return "plain" }

type memStore struct{ Component }

func (*memStore) Name() string { return "mem" }

type service struct {
	Component
	S Store `inject:""`
}

func (s *service) Store() Store { return s.S }

type handler struct {
	Component
	Svc Service `inject:""`
}

func (h *handler) Service() Service { return h.Svc }

// twoStores asks for the same capability twice.
type twoStores struct {
	Component
	A Store `inject:""`
	B Store `inject:""`
}

type skipper struct {
	Component
	S     Store `inject:"-"`
	Label string
}

type hidden struct {
	Component
	s Store `inject:""`
}

// Base holds a dependency promoted into withBase.
type Base struct {
	S Store `inject:""`
}

type withBase struct {
	Component
	Base
}

// concreteDep requests a component type directly instead of a capability.
type concreteDep struct {
	Component
	M *memStore `inject:""`
}

type pinger struct {
	Component
	P Pong `inject:""`
}

func (*pinger) ping() {}

type ponger struct {
	Component
	P Ping `inject:""`
}

func (*ponger) pong() {}

type selfRef struct {
	Component
	Self *selfRef `inject:""`
}

// Constructor-built components.

type dsnStore struct {
	Component
	dsn string
}

func (s *dsnStore) Name() string { return s.dsn }

func newDSNStore() *dsnStore { return &dsnStore{dsn: "postgres://local"} }

type repo struct {
	Component
	store Store
	Greet Greeter `inject:""`
}

func newRepo(s Store) (*repo, error) { return &repo{store: s}, nil }

type failing struct{ Component }

var errBoom = stderrors.New("boom")

func newFailing() (*failing, error) { return nil, errBoom }

type panicking struct{ Component }

func newPanicking() *panicking { panic("kaboom") }

type nilResult struct{ Component }

func newNilResult() *nilResult { return nil }

type ctorA struct {
	Component
	b *ctorB
}

type ctorB struct {
	Component
	a *ctorA
}

func newCtorA(b *ctorB) *ctorA { return &ctorA{b: b} }
func newCtorB(a *ctorA) *ctorB { return &ctorB{a: a} }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

func stdIs(err, target error) bool { return stderrors.Is(err, target) }
