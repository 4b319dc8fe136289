// Package caps resolves the effective capability set for a browser session.
package caps

// Capabilities maps WebDriver capability names to values.
type Capabilities map[string]any

// Standard capability keys.
const (
	KeyBrowserName     = "browserName"
	KeyVersion         = "version"
	KeyTakesScreenshot = "takesScreenshot"
)

// Defaults returns the lowest-precedence capability layer. Screenshot
// support is always requested unless a higher layer turns it off.
func Defaults() Capabilities {
	return Capabilities{KeyTakesScreenshot: true}
}

// Resolve merges capability layers from lowest to highest precedence.
// Later layers override earlier ones key by key. The result shares no
// map with any input; nil layers are skipped.
func Resolve(layers ...Capabilities) Capabilities {
	merged := Capabilities{}
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}

// Clone returns an independent shallow copy.
func (c Capabilities) Clone() Capabilities {
	return Resolve(c)
}

// BrowserName returns the browser identifier, or "" when absent.
func (c Capabilities) BrowserName() string {
	return c.str(KeyBrowserName)
}

// Version returns the browser version, or "" when absent.
func (c Capabilities) Version() string {
	return c.str(KeyVersion)
}

func (c Capabilities) str(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}
