package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/umputun/uicheck/pkg/scenario"
)

// queryTimeout bounds the element reads done by Inspect, the element can detach between calls.
const queryTimeout = time.Second

// Playwright launches sessions through a running playwright driver.
type Playwright struct {
	pw *playwright.Playwright
}

// StartPlaywright starts the playwright driver, installing it and the browser first when install is set.
func StartPlaywright(install bool, browserName string) (*Playwright, error) {
	if install {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browserName}}); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	return &Playwright{pw: pw}, nil
}

// Stop stops the driver.
func (p *Playwright) Stop() error {
	if err := p.pw.Stop(); err != nil {
		return fmt.Errorf("stop playwright: %w", err)
	}
	return nil
}

// Launch starts a browser with a fresh context and page. Cancelling ctx closes the browser,
// which makes any in-flight action fail fast.
func (p *Playwright) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bt := p.pw.Chromium
	switch opts.Browser {
	case "firefox":
		bt = p.pw.Firefox
	case "webkit":
		bt = p.pw.WebKit
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", opts.Browser, err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.Width > 0 && opts.Height > 0 {
		ctxOpts.Viewport = &playwright.Size{Width: opts.Width, Height: opts.Height}
	}
	bc, err := b.NewContext(ctxOpts)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	pg, err := bc.NewPage()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	s := &pwSession{browser: b, page: &pwPage{page: pg}, done: make(chan struct{})}
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Close()
		case <-s.done:
		}
	}()
	return s, nil
}

type pwSession struct {
	browser playwright.Browser
	page    *pwPage
	once    sync.Once
	done    chan struct{}
	err     error
}

func (s *pwSession) Page() Page { return s.page }

// Close closes the browser once, later calls return the first result.
func (s *pwSession) Close() error {
	s.once.Do(func() {
		close(s.done)
		if err := s.browser.Close(); err != nil {
			s.err = fmt.Errorf("close browser: %w", err)
		}
	})
	return s.err
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Goto(url string, timeout time.Duration) error {
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (p *pwPage) Reload(timeout time.Duration) error {
	if _, err := p.page.Reload(playwright.PageReloadOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (p *pwPage) WaitForLoadState(state string, timeout time.Duration) error {
	ls, err := loadState(state)
	if err != nil {
		return err
	}
	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: ls, Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("wait for load state %s: %w", state, err)
	}
	return nil
}

func (p *pwPage) SetViewport(width, height int) error {
	if err := p.page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}
	return nil
}

func (p *pwPage) URL() string { return p.page.URL() }

func (p *pwPage) Inspect(target scenario.Target) (ElementState, error) {
	loc, err := p.locator(target)
	if err != nil {
		return ElementState{}, err
	}
	n, err := loc.Count()
	if err != nil {
		return ElementState{}, fmt.Errorf("count %s: %w", target, err)
	}
	st := ElementState{Count: n}
	if n == 0 {
		return st, nil
	}

	el := loc.First()
	if st.Visible, err = el.IsVisible(); err != nil {
		return st, fmt.Errorf("visibility of %s: %w", target, err)
	}
	if st.Text, err = el.TextContent(playwright.LocatorTextContentOptions{Timeout: ms(queryTimeout)}); err != nil {
		return st, fmt.Errorf("text of %s: %w", target, err)
	}
	if !st.Visible {
		return st, nil
	}
	if st.Enabled, err = el.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: ms(queryTimeout)}); err != nil {
		return st, fmt.Errorf("enabled state of %s: %w", target, err)
	}
	box, err := el.BoundingBox(playwright.LocatorBoundingBoxOptions{Timeout: ms(queryTimeout)})
	if err != nil {
		return st, fmt.Errorf("bounding box of %s: %w", target, err)
	}
	if box != nil {
		st.Box = &Box{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
	}
	return st, nil
}

func (p *pwPage) Fill(target scenario.Target, value string, timeout time.Duration) error {
	loc, err := p.locator(target)
	if err != nil {
		return err
	}
	// the value is left out of the error, it is usually a credential
	if err := loc.Fill(value, playwright.LocatorFillOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("fill %s: %w", target, err)
	}
	return nil
}

func (p *pwPage) Click(target scenario.Target, timeout time.Duration) error {
	loc, err := p.locator(target)
	if err != nil {
		return err
	}
	if err := loc.Click(playwright.LocatorClickOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("click %s: %w", target, err)
	}
	return nil
}

func (p *pwPage) Hover(target scenario.Target, timeout time.Duration) error {
	loc, err := p.locator(target)
	if err != nil {
		return err
	}
	if err := loc.Hover(playwright.LocatorHoverOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("hover %s: %w", target, err)
	}
	return nil
}

func (p *pwPage) Screenshot(path string) error {
	if _, err := p.page.Screenshot(playwright.PageScreenshotOptions{Path: playwright.String(path)}); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}

func (p *pwPage) Content() (string, error) {
	c, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("page content: %w", err)
	}
	return c, nil
}

func (p *pwPage) OnConsole(fn func(ConsoleMessage)) {
	p.page.OnConsole(func(msg playwright.ConsoleMessage) {
		fn(ConsoleMessage{Type: msg.Type(), Text: msg.Text()})
	})
}

// locator maps a target to a playwright locator.
func (p *pwPage) locator(t scenario.Target) (playwright.Locator, error) {
	var loc playwright.Locator
	switch {
	case t.CSS != "":
		loc = p.page.Locator(t.CSS)
	case t.Role != "":
		opts := playwright.PageGetByRoleOptions{}
		switch {
		case t.NameRegex != "":
			re, err := regexp.Compile(t.NameRegex)
			if err != nil {
				return nil, fmt.Errorf("name_regex of %s: %w", t, err)
			}
			opts.Name = re
		case t.Name != "":
			opts.Name = t.Name
			opts.Exact = playwright.Bool(t.Exact)
		}
		loc = p.page.GetByRole(playwright.AriaRole(t.Role), opts)
	case t.Label != "":
		loc = p.page.GetByLabel(t.Label, playwright.PageGetByLabelOptions{Exact: playwright.Bool(t.Exact)})
	case t.Text != "":
		loc = p.page.GetByText(t.Text, playwright.PageGetByTextOptions{Exact: playwright.Bool(t.Exact)})
	case t.TestID != "":
		loc = p.page.GetByTestId(t.TestID)
	case t.Placeholder != "":
		loc = p.page.GetByPlaceholder(t.Placeholder, playwright.PageGetByPlaceholderOptions{Exact: playwright.Bool(t.Exact)})
	default:
		return nil, errors.New("empty target")
	}

	if t.HasText != "" {
		loc = loc.Filter(playwright.LocatorFilterOptions{HasText: t.HasText})
	}
	switch {
	case t.First:
		loc = loc.First()
	case t.Nth != nil:
		loc = loc.Nth(*t.Nth)
	}
	return loc, nil
}

// ms converts a timeout to playwright milliseconds. Zero means "engine default", playwright
// itself treats 0 as no timeout at all.
func ms(d time.Duration) *float64 {
	if d <= 0 {
		return nil
	}
	return playwright.Float(float64(d.Milliseconds()))
}

func loadState(s string) (*playwright.LoadState, error) {
	switch s {
	case "", "load":
		return playwright.LoadStateLoad, nil
	case "domcontentloaded":
		return playwright.LoadStateDomcontentloaded, nil
	case "networkidle":
		return playwright.LoadStateNetworkidle, nil
	default:
		return nil, fmt.Errorf("unknown load state %q", s)
	}
}
