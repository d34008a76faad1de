package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// fragmentSanitizer allows the markup produced by resume.tmpl and nothing
// else. Profile images are only accepted as base64 data URIs.
func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"article", "header", "section", "div", "span",
			"h1", "h2", "h3", "p", "ul", "li", "a", "img",
		)
		policy.AllowAttrs("class", "aria-hidden").Globally()
		policy.AllowDataAttributes()

		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto", "tel")
		policy.RequireParseableURLs(true)

		policy.AllowAttrs("src", "alt").OnElements("img")
		policy.AllowDataURIImages()

		fragmentPolicy = policy
	})
	return fragmentPolicy
}
