package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// Format selects how a FileSink renders the stylesheet.
type Format string

const (
	// FormatCSS writes the stylesheet as is.
	FormatCSS Format = "css"
	// FormatUserscript wraps the stylesheet in a user script that injects it.
	FormatUserscript Format = "userscript"
)

// DefaultStyleID is the id of the injected style element.
const DefaultStyleID = "veil-style"

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatCSS, FormatUserscript}
}

// ParseFormat converts a config value into a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSS:
		return FormatCSS, nil
	case FormatUserscript:
		return FormatUserscript, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be css or userscript)", value)
	}
}

// Renderer turns compiled CSS into file content.
type Renderer interface {
	Render(css string) ([]byte, error)
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format, styleID string) (Renderer, error) {
	switch format {
	case FormatCSS, "":
		return cssRenderer{}, nil
	case FormatUserscript:
		if styleID == "" {
			styleID = DefaultStyleID
		}
		return userscriptRenderer{styleID: styleID}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

type cssRenderer struct{}

func (cssRenderer) Render(css string) ([]byte, error) {
	return []byte(css), nil
}

// The style element is created once and placed first so page styles win
// only through !important of their own. With neither head nor root element
// yet, injection waits for DOMContentLoaded.
var userscriptTemplate = template.Must(template.New("userscript").Parse(`// ==UserScript==
// @name         veil
// @namespace    https://github.com/bnema/veil
// @description  Obscure page regions selected in veil
// @match        *://*/*
// @run-at       document-start
// @grant        none
// ==/UserScript==
(function () {
  "use strict";
  var id = {{.ID}};
  var css = {{.CSS}};
  function apply() {
    var style = document.getElementById(id);
    if (!style) {
      var parent = document.head || document.documentElement;
      if (!parent) {
        return false;
      }
      style = document.createElement("style");
      style.id = id;
      parent.insertBefore(style, parent.firstChild);
    }
    if (style.textContent !== css) {
      style.textContent = css;
    }
    return true;
  }
  if (!apply()) {
    document.addEventListener("DOMContentLoaded", apply, { once: true });
  }
})();
`))

type userscriptRenderer struct {
	styleID string
}

func (r userscriptRenderer) Render(css string) ([]byte, error) {
	id, err := jsString(r.styleID)
	if err != nil {
		return nil, err
	}
	text, err := jsString(css)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := userscriptTemplate.Execute(&buf, struct{ ID, CSS string }{id, text}); err != nil {
		return nil, fmt.Errorf("failed to render userscript: %w", err)
	}
	return buf.Bytes(), nil
}

// jsString encodes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode string literal: %w", err)
	}
	return string(data), nil
}
