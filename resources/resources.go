// Package resources embeds the in-page scripts injected on every
// navigation. The scripts are opaque assets; the only contract the
// controller relies on is the prepareScreenshot hook exposed under
// HookName.
package resources

import _ "embed"

// HookName is the global the client script installs on the page.
const HookName = "__ocular"

//go:embed scripts/ocular.client.js
var ClientScript string

//go:embed scripts/ocular.coverage.js
var CoverageScript string
