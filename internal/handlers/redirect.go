package handlers

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultAfterLogin = "/dashboard"

// Paths never worth returning to after login.
var notReturnable = map[string]bool{
	"/logout": true,
}

// safeNext returns next when it is a same-site absolute path and "" otherwise.
// Scheme-relative ("//host") and backslash ("/\host") forms are rejected
// because browsers resolve them to another host. Paths in notReturnable are
// dropped as well.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") {
		return ""
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return ""
	}
	if strings.ContainsAny(next, "\r\n\t") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	if notReturnable[strings.TrimSuffix(u.Path, "/")] {
		return ""
	}
	return next
}

// nextParam reads next from the query string, then from the posted form.
func nextParam(c *gin.Context) string {
	if next := c.Query("next"); next != "" {
		return next
	}
	return c.PostForm("next")
}

// afterLogin picks where an authenticated user lands.
func afterLogin(next string) string {
	if safe := safeNext(next); safe != "" {
		return safe
	}
	return defaultAfterLogin
}

func loginURL(next string) string {
	return withNext("/login", next)
}

func signupURL(next string) string {
	return withNext("/signup", next)
}

// withNext appends a safe next to path. Slashes stay literal so the
// location reads /login?next=/product/x.
func withNext(path, next string) string {
	next = safeNext(next)
	if next == "" {
		return path
	}
	return path + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}
