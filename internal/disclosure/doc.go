// Package disclosure decides which floating overlay (tooltip, hover card) is
// visible for a document whose triggers may live inside any number of nested
// shadow roots.
//
// Components register a trigger element together with the overlay it
// discloses. The Manager listens once at the document level, and once per
// shadow root that holds at least one trigger, and resolves every event to a
// registered trigger by walking its composed path. Hover opens and closes go
// through a single debounce timer; click, focus and Escape act immediately.
// Every open funnels through the same "close the active overlay, then open
// the new one" step, so at most one overlay is ever open through a Manager.
//
// # Usage
//
//	mgr := disclosure.New(doc, disclosure.WithHoverDelay(80*time.Millisecond))
//	mgr.RegisterElement(button, tip)   // when the tooltip attaches
//	defer mgr.UnregisterElement(button) // when it detaches
//
// A Manager is not safe for concurrent use. It must be driven from the
// goroutine that dispatches the document's events; its Scheduler is
// responsible for delivering timer callbacks on that same goroutine.
package disclosure
