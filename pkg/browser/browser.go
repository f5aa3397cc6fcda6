// Package browser abstracts the browser engine behind a small Page interface.
// The runner only talks to Page, the playwright implementation lives in playwright.go.
package browser

import (
	"context"
	"time"

	"github.com/umputun/uicheck/pkg/scenario"
)

//go:generate moq -out mocks/page.go -pkg mocks -skip-ensure -fmt goimports . Page
//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session
//go:generate moq -out mocks/launcher.go -pkg mocks -skip-ensure -fmt goimports . Launcher

// Page is a single browser tab. Actions wait for their target up to timeout,
// queries return immediately with the current state.
type Page interface {
	Goto(url string, timeout time.Duration) error
	Reload(timeout time.Duration) error
	WaitForLoadState(state string, timeout time.Duration) error
	SetViewport(width, height int) error
	URL() string
	Inspect(target scenario.Target) (ElementState, error)
	Fill(target scenario.Target, value string, timeout time.Duration) error
	Click(target scenario.Target, timeout time.Duration) error
	Hover(target scenario.Target, timeout time.Duration) error
	Screenshot(path string) error
	Content() (string, error)
	OnConsole(fn func(ConsoleMessage))
}

// Session owns one browser, one context and one page.
type Session interface {
	Page() Page
	Close() error
}

// Launcher starts sessions.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// LaunchOptions configure a new session.
type LaunchOptions struct {
	Browser  string // chromium, firefox or webkit
	Headless bool
	SlowMo   time.Duration
	Width    int // initial viewport, 0 keeps the engine default
	Height   int
}

// ElementState is a snapshot of what a target currently resolves to.
// Visible, Enabled, Text and Box describe the first match.
type ElementState struct {
	Count   int
	Visible bool
	Enabled bool
	Text    string
	Box     *Box // nil when the element is not rendered
}

// Box is an element bounding box in css pixels.
type Box struct {
	X, Y, Width, Height float64
}

// ConsoleMessage is a browser console entry.
type ConsoleMessage struct {
	Type string // log, warning, error, ...
	Text string
}
