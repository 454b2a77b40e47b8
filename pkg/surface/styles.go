package surface

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vango-dev/toastkit/pkg/toast"
)

// baseCSS is the layout contract: fixed containers on the right edge, a
// horizontal slide for entrance and exit, and a centered column with a
// vertical slide on narrow screens.
const baseCSS = `
.toast-container {
  position: fixed;
  z-index: 9999;
  max-width: 300px;
  pointer-events: none;
}
.toast-container.top { top: 20px; right: 10px; }
.toast-container.bottom { bottom: 20px; right: 10px; }
.toast {
  background: white;
  border-radius: 8px;
  padding: 16px;
  margin-bottom: 10px;
  box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15);
  border-left: 4px solid #007bff;
  display: flex;
  align-items: center;
  gap: 12px;
  min-width: 200px;
  opacity: 0;
  transform: translateX(100%);
  transition: all 0.3s ease-in-out;
  position: relative;
  pointer-events: auto;
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
}
.toast.show { opacity: 1; transform: translateX(0); }
.toast.hide { opacity: 0; transform: translateX(100%); }
.toast-icon {
  width: 24px;
  height: 24px;
  border-radius: 50%;
  display: flex;
  align-items: center;
  justify-content: center;
  color: white;
  font-weight: bold;
  font-size: 16px;
  flex-shrink: 0;
}
.toast-content { flex: 1; }
.toast-title { font-weight: bold; margin-bottom: 4px; color: #333; font-size: 14px; }
.toast-message { color: #666; font-size: 13px; line-height: 1.4; }
.toast-close {
  position: absolute;
  top: 8px;
  right: 8px;
  background: none;
  border: none;
  font-size: 18px;
  cursor: pointer;
  color: #999;
  width: 20px;
  height: 20px;
  display: flex;
  align-items: center;
  justify-content: center;
  border-radius: 50%;
  transition: all 0.2s;
}
.toast-close:hover { background-color: #f0f0f0; color: #333; }
.toast-progress {
  position: absolute;
  bottom: 0;
  left: 0;
  height: 3px;
  background-color: rgba(0, 0, 0, 0.1);
  border-radius: 0 0 8px 8px;
  transition: width linear;
}
@media (max-width: 480px) {
  .toast-container.top,
  .toast-container.bottom {
    left: 50%;
    transform: translateX(-50%);
    right: auto;
    max-width: 90%;
    width: 100%;
    display: flex;
    flex-direction: column;
    align-items: center;
  }
  .toast { width: 100%; min-width: auto; transform: translateY(-120%); }
  .toast.show { transform: translateY(0); }
  .toast.hide { transform: translateY(-120%); }
}
`

// Stylesheet returns the CSS for p. transition is the entrance and exit
// animation length and should match the registry's TransitionDuration.
func Stylesheet(p toast.Presentation, transition time.Duration) string {
	var b strings.Builder
	b.WriteString(baseCSS)
	if transition > 0 {
		fmt.Fprintf(&b, ".toast { transition-duration: %dms; }\n", transition.Milliseconds())
	}

	names := make([]string, 0, len(p.Styles))
	for sev := range p.Styles {
		names = append(names, string(sev))
	}
	sort.Strings(names)

	for _, name := range names {
		style := p.Styles[toast.Severity(name)]
		class := className(name)
		accent := cssValue(style.Accent)
		fmt.Fprintf(&b, ".toast.%s { border-left-color: %s; }\n", class, accent)
		fmt.Fprintf(&b, ".toast.%[1]s .toast-icon, .toast.%[1]s .toast-progress { background-color: %[2]s; }\n", class, accent)
	}
	return b.String()
}

// className reduces a severity or position name to a safe CSS class name.
func className(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "custom"
	}
	return b.String()
}

// cssValue drops characters that could end a declaration or a style
// element.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, v)
}
