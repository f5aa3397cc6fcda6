//go:build e2e

package e2e

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"
)

const sessionCookie = "session"

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; }
.toast { position: fixed; top: 10px; right: 10px; padding: 8px; background: #c33; color: #fff; }
.tabs button[aria-selected=true] { font-weight: bold; }
[data-testid=quotes-container] { width: 500px; height: 120px; background: #eee; }
</style></head>
<body>{{.Body}}</body></html>`))

type page struct {
	Title string
	Body  template.HTML
}

const loginBody = `
<form method="post" action="/login">
  <label for="email">Email Address</label><input id="email" name="email" type="email">
  <label for="password">Password</label><input id="password" name="password" type="password">
  <label for="server">Server</label><input id="server" name="server">
  <button type="submit">Sign In</button>
</form>
{{if .}}<div class="toast toast-error" role="alert">Login failed: {{.}}</div>
<script>setTimeout(function () { document.querySelector('.toast').remove(); }, 800);</script>{{end}}`

const devicesBody = `
<h1>Devices</h1>
<ul><li><a href="/devices/1/dashboard">Device 1</a></li><li><a href="/devices/2/dashboard">Device 2</a></li></ul>`

const dashboardBody = `
<header><h1>Device %s</h1>
<button data-testid="language-switcher" onclick="toggleLang()"></button></header>
<div class="tabs" role="tablist">
  <button role="tab" aria-selected="true" onclick="show('Monitor')">Monitor</button>
  <button role="tab" onclick="show('Control')">Control</button>
  <button role="tab" onclick="show('Analytic')">Analytic</button>
  <button role="tab" onclick="show('Config')">Config</button>
</div>
<section id="panel"><h2 id="panel-title">Monitor</h2></section>
<div id="status">connecting</div>
<div data-testid="quotes-container">quotes</div>
<div class="chart"><span class="point">1</span><span class="point">2</span><span class="point">3</span></div>
<footer>fixture footer</footer>
<script>
function show(name) {
  document.getElementById('panel-title').textContent = name;
  document.querySelectorAll('[role=tab]').forEach(function (b) {
    b.setAttribute('aria-selected', b.textContent === name ? 'true' : 'false');
  });
}
function renderLang() {
  var lang = localStorage.getItem('lang') || 'en';
  document.querySelector('[data-testid=language-switcher]').textContent = lang === 'en' ? 'ID' : 'EN';
}
function toggleLang() {
  localStorage.setItem('lang', (localStorage.getItem('lang') || 'en') === 'en' ? 'id' : 'en');
  renderLang();
}
renderLang();
console.log('dashboard ready');
setTimeout(function () { document.getElementById('status').textContent = 'live'; }, 300);
</script>`

var loginTmpl = template.Must(template.New("login").Parse(loginBody))

// newFixtureApp serves a small device dashboard: a login form, a device list and per-device dashboards.
func newFixtureApp(email, password string) http.Handler {
	mux := http.NewServeMux()

	render := func(w http.ResponseWriter, title string, body template.HTML) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = pageTmpl.Execute(w, page{Title: title, Body: body})
	}
	renderLogin := func(w http.ResponseWriter, errText string) {
		var b strings.Builder
		_ = loginTmpl.Execute(&b, errText)
		render(w, "Login", template.HTML(b.String())) //nolint:gosec // fixture markup
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(sessionCookie); err != nil || c.Value != "ok" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/devices", http.StatusFound)
	})
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, _ *http.Request) { renderLogin(w, "") })
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("email") != email || r.FormValue("password") != password {
			renderLogin(w, "invalid credentials")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
		http.Redirect(w, r, "/devices", http.StatusFound)
	})
	mux.HandleFunc("GET /devices", authed(func(w http.ResponseWriter, _ *http.Request) {
		render(w, "Devices", devicesBody)
	}))
	mux.HandleFunc("GET /devices/{id}/dashboard", authed(func(w http.ResponseWriter, r *http.Request) {
		id := template.HTMLEscapeString(r.PathValue("id"))
		render(w, "Dashboard", template.HTML(fmt.Sprintf(dashboardBody, id))) //nolint:gosec // id is escaped
	}))
	return mux
}
