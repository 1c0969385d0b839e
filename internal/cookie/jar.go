package cookie

import (
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// SameSite attribute values.
const (
	SameSiteLax    = "Lax"
	SameSiteStrict = "Strict"
	SameSiteNone   = "None"
)

// Options controls the attributes written alongside a cookie.
type Options struct {
	// Secure: nil appends the attribute only when the request arrived over
	// TLS; an explicit false disables it regardless of transport.
	Secure   *bool
	SameSite string // defaults to Lax
	Path     string // defaults to /
}

// Jar reads and writes cookies for a single request/response pair. Writes
// are mirrored into a pending overlay so a value set during the request is
// visible to later Gets before the response ever reaches a client.
type Jar struct {
	ctx     *fasthttp.RequestCtx
	pending map[string]*string // nil marks a deletion
}

// New binds a jar to the given request context.
func New(ctx *fasthttp.RequestCtx) *Jar {
	return &Jar{
		ctx:     ctx,
		pending: make(map[string]*string),
	}
}

// Set serializes value (URL-encoded) into a single cookie. days == 0 yields
// a session-lifetime cookie with no expiry attribute.
func (j *Jar) Set(name, value string, days int, opts Options) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetValue(url.QueryEscape(value))
	c.SetPath(pathOrDefault(opts.Path))
	c.SetSameSite(sameSiteMode(opts.SameSite))

	if days > 0 {
		c.SetExpire(time.Now().Add(time.Duration(days) * 24 * time.Hour))
	}
	if j.secure(opts.Secure) {
		c.SetSecure(true)
	}

	j.ctx.Response.Header.SetCookie(c)
	v := value
	j.pending[name] = &v
}

// Get returns the decoded value of the named cookie, preferring values
// written earlier in the same request. The raw header is parsed
// best-effort: malformed segments are skipped silently.
func (j *Jar) Get(name string) (string, bool) {
	if v, ok := j.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	prefix := name + "="
	for _, segment := range j.rawSegments() {
		if strings.HasPrefix(segment, prefix) {
			return decodeValue(segment[len(prefix):]), true
		}
	}
	return "", false
}

// Delete overwrites the cookie with an already-expired timestamp.
func (j *Jar) Delete(name, path string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(name)
	c.SetValue("")
	c.SetPath(pathOrDefault(path))
	c.SetExpire(fasthttp.CookieExpireDelete)

	j.ctx.Response.Header.SetCookie(c)
	j.pending[name] = nil
}

// Exists reports whether the named cookie is present.
func (j *Jar) Exists(name string) bool {
	_, ok := j.Get(name)
	return ok
}

// All returns every parseable cookie as a name/value map.
func (j *Jar) All() map[string]string {
	cookies := make(map[string]string)
	for _, segment := range j.rawSegments() {
		eq := strings.IndexByte(segment, '=')
		if eq <= 0 {
			continue
		}
		cookies[segment[:eq]] = decodeValue(segment[eq+1:])
	}
	for name, v := range j.pending {
		if v == nil {
			delete(cookies, name)
			continue
		}
		cookies[name] = *v
	}
	return cookies
}

func (j *Jar) rawSegments() []string {
	raw := string(j.ctx.Request.Header.Peek(fasthttp.HeaderCookie))
	if raw == "" {
		return nil
	}
	segments := strings.Split(raw, ";")
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}
	return segments
}

func (j *Jar) secure(explicit *bool) bool {
	if explicit != nil && !*explicit {
		return false
	}
	return j.ctx.IsTLS()
}

func decodeValue(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func pathOrDefault(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func sameSiteMode(attr string) fasthttp.CookieSameSite {
	switch attr {
	case SameSiteStrict:
		return fasthttp.CookieSameSiteStrictMode
	case SameSiteNone:
		return fasthttp.CookieSameSiteNoneMode
	default:
		return fasthttp.CookieSameSiteLaxMode
	}
}
