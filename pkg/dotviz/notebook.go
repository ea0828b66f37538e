package dotviz

import "sync"

// Displayer is implemented by notebook hosts that can render MIME bundles
// inline. The bundle maps MIME types to payloads; dotviz only emits
// "text/html".
type Displayer interface {
	Display(bundle map[string]string) error
}

var (
	displayMu sync.RWMutex
	displayer Displayer
)

// RegisterDisplayer installs a notebook display hook. Registration is
// explicit and opt-in: nothing is registered at package initialization, and
// embedding applications call this only when they know a compatible host is
// present. Passing nil removes the current hook.
func RegisterDisplayer(d Displayer) {
	displayMu.Lock()
	defer displayMu.Unlock()
	displayer = d
}

// Display renders dg through the registered displayer. When no displayer is
// registered the call is a silent no-op, so library code can call it
// unconditionally. Conversion errors and host errors are returned.
func Display(dg *DotGraph) error {
	displayMu.RLock()
	d := displayer
	displayMu.RUnlock()

	if d == nil {
		return nil
	}
	bundle, err := dg.MIMEBundle()
	if err != nil {
		return err
	}
	return d.Display(bundle)
}
