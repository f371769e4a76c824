package handlers

import "testing"

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"/dashboard":              "/dashboard",
		"/product/talking-avatar": "/product/talking-avatar",
		"/products?page=2":        "/products?page=2",
		"/":                       "/",
		"":                        "",
		"dashboard":               "",
		"http://evil.example/x":   "",
		"https://evil.example":    "",
		"//evil.example/x":        "",
		`/\evil.example`:          "",
		"javascript:alert(1)":     "",
		"/ok\r\nSet-Cookie: x=1":  "",
		"/logout":                 "",
		"/logout/":                "",
		"/logout?x=1":             "",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Errorf("safeNext(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestAfterLogin(t *testing.T) {
	if got := afterLogin("http://evil.example/x"); got != "/dashboard" {
		t.Fatalf("got %q", got)
	}
	if got := afterLogin("/logout"); got != "/dashboard" {
		t.Fatalf("got %q", got)
	}
	if got := afterLogin("/product/x"); got != "/product/x" {
		t.Fatalf("got %q", got)
	}
}

func TestLoginURL(t *testing.T) {
	cases := map[string]string{
		"/product/talking-avatar": "/login?next=/product/talking-avatar",
		"/a b":                    "/login?next=/a+b",
		"//evil.example":          "/login",
		"/logout":                 "/login",
		"":                        "/login",
	}
	for in, want := range cases {
		if got := loginURL(in); got != want {
			t.Errorf("loginURL(%q)=%q, want %q", in, got, want)
		}
	}
	if got := signupURL("/dashboard"); got != "/signup?next=/dashboard" {
		t.Errorf("signupURL=%q", got)
	}
}
